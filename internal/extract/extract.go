// Package extract pulls plain text out of uploaded resume files.
package extract

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-reviewer/internal/validation"
)

// ParseResume extracts the text content of a resume file. The format is
// chosen by the filename extension; pdf and docx are supported.
func ParseResume(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return "", validation.ErrUnsupportedFileType
	}
}

// Parser exposes ParseResume as a method.
type Parser struct{}

func (Parser) Parse(filename string, data []byte) (string, error) {
	return ParseResume(filename, data)
}

// extractPDFText reads every page of a PDF and joins the page texts with
// newlines. Pages that fail to decode are skipped.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}
	return text.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read docx: %w", err)
	}
	defer doc.Close()

	return flattenDocumentXML(doc.Editable().GetContent()), nil
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// flattenDocumentXML turns raw WordprocessingML into plain text. Paragraph
// ends become newlines, tabs are kept, and all remaining tags are stripped.
func flattenDocumentXML(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = xmlTagPattern.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
