package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CleanText normalizes extracted resume text and job descriptions. Line
// endings become LF, every line is trimmed, and blank lines are dropped.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}

// Hash returns the SHA256 hex digest of text. Stored alongside analyses so
// repeat uploads of the same resume can be spotted.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
