package annotatetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-reviewer/internal/annotate"
)

func TestFake_DefaultsToNouns(t *testing.T) {
	fake := NewFake()

	ann, err := fake.Annotate(context.Background(), "Python experience")
	require.NoError(t, err)
	require.Len(t, ann.Tokens, 2)

	assert.Equal(t, "Python", ann.Tokens[0].Text)
	assert.Equal(t, "python", ann.Tokens[0].Lemma)
	assert.Equal(t, "NOUN", ann.Tokens[0].POS)
	assert.False(t, ann.Tokens[0].IsStop)
	assert.False(t, ann.Tokens[0].IsPunct)
}

func TestFake_LexiconOverrides(t *testing.T) {
	fake := NewFake().Add("developed", "develop", "VERB")

	ann, err := fake.Annotate(context.Background(), "Developed services")
	require.NoError(t, err)
	require.Len(t, ann.Tokens, 2)

	assert.Equal(t, "Developed", ann.Tokens[0].Text)
	assert.Equal(t, "develop", ann.Tokens[0].Lemma)
	assert.Equal(t, "VERB", ann.Tokens[0].POS)
}

func TestFake_StopWords(t *testing.T) {
	fake := NewFake().AddStop("experience")

	ann, err := fake.Annotate(context.Background(), "the experience")
	require.NoError(t, err)
	require.Len(t, ann.Tokens, 2)

	assert.True(t, ann.Tokens[0].IsStop, "default stop word")
	assert.True(t, ann.Tokens[1].IsStop, "added stop word")
}

func TestFake_SplitsPunctuation(t *testing.T) {
	fake := NewFake()

	ann, err := fake.Annotate(context.Background(), "Go, Python.")
	require.NoError(t, err)
	require.Len(t, ann.Tokens, 4)

	assert.Equal(t, "Go", ann.Tokens[0].Text)
	assert.True(t, ann.Tokens[1].IsPunct)
	assert.Equal(t, ",", ann.Tokens[1].Text)
	assert.Equal(t, "Python", ann.Tokens[2].Text)
	assert.True(t, ann.Tokens[3].IsPunct)
}

func TestFake_EmitsRegisteredEntities(t *testing.T) {
	fake := NewFake().
		AddEntity("Docker", "PRODUCT").
		AddEntity("Acme Corp", "ORG").
		AddEntity("Kubernetes", "PRODUCT")

	ann, err := fake.Annotate(context.Background(), "Worked at Acme Corp with Docker")
	require.NoError(t, err)

	require.Len(t, ann.Entities, 2)
	assert.Equal(t, annotate.Entity{Text: "Acme Corp", Label: "ORG"}, ann.Entities[0])
	assert.Equal(t, annotate.Entity{Text: "Docker", Label: "PRODUCT"}, ann.Entities[1])
}

func TestFake_ReturnsConfiguredError(t *testing.T) {
	fake := NewFake()
	fake.Err = errors.New("annotator down")

	_, err := fake.Annotate(context.Background(), "anything")
	assert.Error(t, err)
	assert.Empty(t, fake.Texts)
}

func TestFake_RecordsTexts(t *testing.T) {
	fake := NewFake()

	_, err := fake.Annotate(context.Background(), "first")
	require.NoError(t, err)
	_, err = fake.Annotate(context.Background(), "second")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, fake.Texts)
}
