package validation

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// minJobDescriptionChars is the shortest job description worth analyzing.
	minJobDescriptionChars = 50

	// minResumeTextChars is the least extracted text a readable resume yields.
	minResumeTextChars = 100
)

// allowedExtensions are the upload formats the parser understands, without
// the leading dot.
var allowedExtensions = []string{"pdf", "docx"}

// AllowedExtensions returns the supported resume file extensions.
func AllowedExtensions() []string {
	out := make([]string, len(allowedExtensions))
	copy(out, allowedExtensions)
	return out
}

// CheckFilename rejects empty filenames and extensions that are not an
// allowed resume format.
func CheckFilename(filename string) error {
	if filename == "" {
		return ErrNoFileSelected
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return ErrUnsupportedFileType
}

// CheckJobDescription rejects blank or too short job descriptions. Length is
// counted in runes after trimming.
func CheckJobDescription(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyJobDescription
	}
	if utf8.RuneCountInString(trimmed) < minJobDescriptionChars {
		return ErrJobDescriptionTooShort
	}
	return nil
}

// CheckResumeText rejects extractions too short to be a readable resume.
func CheckResumeText(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minResumeTextChars {
		return ErrInsufficientText
	}
	return nil
}
