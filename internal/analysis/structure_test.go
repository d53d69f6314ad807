package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-reviewer/internal/annotate/annotatetest"
)

func TestAnalyzeStructure_DetectsSections(t *testing.T) {
	engine := New(annotatetest.NewFake())

	resume := "Email: jon@example.com\n" +
		"Work Experience\n" +
		"Education\n" +
		"Technical Skills"

	res, err := engine.AnalyzeStructure(context.Background(), resume)
	require.NoError(t, err)

	assert.Equal(t, []string{"contact", "experience", "education", "skills"}, res.SectionsFound)
	assert.Equal(t, 4, res.SectionsCount)
	assert.Equal(t, 4, res.TotalLines)
}

func TestAnalyzeStructure_SectionOrderIsFixed(t *testing.T) {
	engine := New(annotatetest.NewFake())

	// Mentioned in reverse order; the report still lists sections in
	// taxonomy order.
	resume := "Certifications\nProjects\nSkills\nEducation\nExperience\nPhone: 555-0100"

	res, err := engine.AnalyzeStructure(context.Background(), resume)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"contact", "experience", "education", "skills", "projects", "certifications",
	}, res.SectionsFound)
	assert.Equal(t, 6, res.SectionsCount)
}

func TestAnalyzeStructure_CountsNonBlankLines(t *testing.T) {
	engine := New(annotatetest.NewFake())

	res, err := engine.AnalyzeStructure(context.Background(), "line one\n\n   \nline two\n")
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalLines)
	assert.Equal(t, 0, res.SectionsCount)
	assert.Empty(t, res.SectionsFound)
}

func TestAnalyzeStructure_FindsStrongVerbLemmas(t *testing.T) {
	fake := annotatetest.NewFake().
		Add("developed", "develop", "VERB").
		Add("implemented", "implement", "VERB").
		Add("managed", "manage", "VERB").
		Add("eating", "eat", "VERB")
	engine := New(fake)

	resume := "Developed and implemented features\n" +
		"Managed teams\n" +
		"Developed tooling\n" +
		"Eating lunch"

	res, err := engine.AnalyzeStructure(context.Background(), resume)
	require.NoError(t, err)

	assert.Equal(t, []string{"develop", "implement", "manage"}, res.StrongVerbsFound)
	assert.Equal(t, 3, res.StrongVerbsCount, "repeated verbs count once")
}

func TestAnalyzeStructure_VerbListRequiresVerbPOS(t *testing.T) {
	engine := New(annotatetest.NewFake())

	// "design" is a strong verb lemma, but here it is a noun.
	res, err := engine.AnalyzeStructure(context.Background(), "Design portfolio")
	require.NoError(t, err)

	assert.Equal(t, 0, res.StrongVerbsCount)
	assert.Empty(t, res.StrongVerbsFound)
	assert.Equal(t, []string{"projects"}, res.SectionsFound)
}

func TestAnalyzeStructure_EmptyResume(t *testing.T) {
	engine := New(annotatetest.NewFake())

	res, err := engine.AnalyzeStructure(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 0, res.TotalLines)
	assert.Equal(t, 0, res.SectionsCount)
	assert.NotNil(t, res.SectionsFound)
	assert.NotNil(t, res.StrongVerbsFound)
}

func TestAnalyzeStructure_AnnotatorError(t *testing.T) {
	fake := annotatetest.NewFake()
	fake.Err = errors.New("worker gone")
	engine := New(fake)

	_, err := engine.AnalyzeStructure(context.Background(), "Experience\nSkills")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "structure analysis failed")
}
