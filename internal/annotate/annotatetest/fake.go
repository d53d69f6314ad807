// Package annotatetest provides an in-memory Annotator for tests.
package annotatetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/jonathan/resume-reviewer/internal/annotate"
)

// defaultStopWords keeps fake annotations from drowning tests in filler
// tokens. Tests can extend the set with AddStop.
var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for",
	"from", "has", "have", "in", "is", "it", "of", "on", "or", "our",
	"that", "the", "to", "was", "we", "were", "will", "with", "you", "your",
}

// Fake is a deterministic Annotator. It tokenizes on whitespace, peels
// punctuation into separate punct tokens, and annotates each word from a
// small configurable lexicon. Unknown words default to non-stop nouns whose
// lemma is the lowercased text.
type Fake struct {
	mu       sync.Mutex
	lexicon  map[string]annotate.Token
	stops    map[string]bool
	entities map[string]string

	// Err, when set, is returned by every Annotate call.
	Err error

	// Texts records every annotated input. Read it only after the calls
	// under test have returned.
	Texts []string
}

var _ annotate.Annotator = (*Fake)(nil)

// NewFake returns a Fake preloaded with the default stop words.
func NewFake() *Fake {
	f := &Fake{
		lexicon:  make(map[string]annotate.Token),
		stops:    make(map[string]bool),
		entities: make(map[string]string),
	}
	for _, w := range defaultStopWords {
		f.stops[w] = true
	}
	return f
}

// Add registers a lemma and part-of-speech for a word (matched
// case-insensitively).
func (f *Fake) Add(word, lemma, pos string) *Fake {
	f.lexicon[strings.ToLower(word)] = annotate.Token{Lemma: lemma, POS: pos}
	return f
}

// AddStop marks words as stop words.
func (f *Fake) AddStop(words ...string) *Fake {
	for _, w := range words {
		f.stops[strings.ToLower(w)] = true
	}
	return f
}

// AddEntity registers a named entity emitted whenever the annotated text
// contains the given surface text.
func (f *Fake) AddEntity(text, label string) *Fake {
	f.entities[text] = label
	return f
}

// Annotate implements annotate.Annotator.
func (f *Fake) Annotate(ctx context.Context, text string) (*annotate.Annotation, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.Texts = append(f.Texts, text)
	f.mu.Unlock()

	ann := &annotate.Annotation{Tokens: []annotate.Token{}, Entities: []annotate.Entity{}}

	for _, field := range strings.Fields(text) {
		lead, core, trail := splitPunct(field)
		for _, r := range lead {
			ann.Tokens = append(ann.Tokens, punctToken(string(r)))
		}
		if core != "" {
			ann.Tokens = append(ann.Tokens, f.wordToken(core))
		}
		for _, r := range trail {
			ann.Tokens = append(ann.Tokens, punctToken(string(r)))
		}
	}

	lower := strings.ToLower(text)
	surfaces := make([]string, 0, len(f.entities))
	for surface := range f.entities {
		surfaces = append(surfaces, surface)
	}
	sort.Strings(surfaces)
	for _, surface := range surfaces {
		if strings.Contains(lower, strings.ToLower(surface)) {
			ann.Entities = append(ann.Entities, annotate.Entity{Text: surface, Label: f.entities[surface]})
		}
	}

	return ann, nil
}

func (f *Fake) wordToken(text string) annotate.Token {
	lower := strings.ToLower(text)
	if tok, ok := f.lexicon[lower]; ok {
		tok.Text = text
		tok.IsStop = f.stops[lower]
		return tok
	}
	return annotate.Token{Text: text, Lemma: lower, POS: "NOUN", IsStop: f.stops[lower]}
}

func punctToken(text string) annotate.Token {
	return annotate.Token{Text: text, Lemma: text, POS: "PUNCT", IsPunct: true}
}

func splitPunct(field string) (lead, core, trail string) {
	runes := []rune(field)
	start, end := 0, len(runes)
	for start < end && unicode.IsPunct(runes[start]) {
		start++
	}
	for end > start && unicode.IsPunct(runes[end-1]) {
		end--
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}
