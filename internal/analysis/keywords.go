package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordLength is the shortest token or entity kept as a keyword.
const minKeywordLength = 2

// keywordPOS holds the coarse part-of-speech tags eligible for keyword
// extraction.
var keywordPOS = map[string]bool{
	"NOUN":  true,
	"PROPN": true,
	"ADJ":   true,
}

// entityLabels holds the named-entity labels eligible for keyword
// extraction (organizations, products, and technology-adjacent spans).
var entityLabels = map[string]bool{
	"ORG":         true,
	"PRODUCT":     true,
	"WORK_OF_ART": true,
	"LANGUAGE":    true,
}

// techSkillVocabulary is the closed list of recognized technology terms.
// Entries are matched by substring containment, so multi-word entries like
// "machine learning" work without tokenization.
var techSkillVocabulary = []string{
	"python", "java", "javascript", "react", "angular", "vue", "node.js", "nodejs",
	"html", "css", "sql", "mysql", "postgresql", "mongodb", "redis",
	"aws", "azure", "gcp", "docker", "kubernetes", "git", "github",
	"machine learning", "ai", "artificial intelligence", "data science",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"flask", "django", "fastapi", "spring", "express",
	"linux", "windows", "macos", "unix",
}

// ExtractKeywords extracts the set of meaningful keywords from text. A
// token contributes its lemma when its part of speech is a noun, proper
// noun, or adjective and it is neither a stop word, punctuation, shorter
// than two characters, nor non-alphabetic. Named entities with an eligible
// label contribute their lowercased full text. Empty text yields an empty
// set, not an error.
func (e *Engine) ExtractKeywords(ctx context.Context, text string) (map[string]bool, error) {
	keywords := make(map[string]bool)

	ann, err := e.annotator.Annotate(ctx, strings.ToLower(text))
	if err != nil {
		return nil, fmt.Errorf("keyword extraction failed: %w", err)
	}

	for _, token := range ann.Tokens {
		if !keywordPOS[token.POS] || token.IsStop || token.IsPunct {
			continue
		}
		if utf8.RuneCountInString(token.Text) < minKeywordLength || !isAlpha(token.Text) {
			continue
		}
		keywords[token.Lemma] = true
	}

	for _, entity := range ann.Entities {
		if entityLabels[entity.Label] && utf8.RuneCountInString(entity.Text) >= minKeywordLength {
			keywords[strings.ToLower(entity.Text)] = true
		}
	}

	return keywords, nil
}

// ExtractTechSkills reports which vocabulary entries occur in the text.
// Matching is case-insensitive substring containment, so an entry can match
// inside a longer word ("react" inside "reactive").
func ExtractTechSkills(text string) map[string]bool {
	lower := strings.ToLower(text)

	found := make(map[string]bool)
	for _, skill := range techSkillVocabulary {
		if strings.Contains(lower, skill) {
			found[skill] = true
		}
	}
	return found
}

// isAlpha reports whether s consists entirely of letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
