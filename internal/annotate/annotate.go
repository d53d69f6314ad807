// Package annotate provides linguistic annotation (part-of-speech tags,
// lemmas, named entities, stop-word flags) for the analysis engine. The
// production implementation is a pool of spaCy worker subprocesses; tests
// use the deterministic fake in the annotatetest subpackage.
package annotate

import "context"

// Annotator produces a linguistic annotation for one text.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}

// Annotation is the linguistic view of one text.
type Annotation struct {
	Tokens   []Token  `json:"tokens"`
	Entities []Entity `json:"entities"`
}

// Token is a single token with the attributes the analysis engine filters on.
// POS is a coarse universal tag (NOUN, PROPN, ADJ, VERB, ...).
type Token struct {
	Text    string `json:"text"`
	Lemma   string `json:"lemma"`
	POS     string `json:"pos"`
	IsStop  bool   `json:"is_stop"`
	IsPunct bool   `json:"is_punct"`
}

// Entity is a named entity span with its label (ORG, PRODUCT, ...).
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}
