package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-reviewer/internal/types"
)

func TestPrintMatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	match := &types.MatchResult{
		OverallScore:       62.7,
		KeywordScore:       60.0,
		TechSkillScore:     66.7,
		KeywordMatches:     []string{"docker", "experience", "python"},
		KeywordMisses:      []string{"developer", "kubernetes"},
		TechSkillMatches:   []string{"docker", "python"},
		TechSkillMisses:    []string{"kubernetes"},
		TotalJobKeywords:   5,
		TotalJobTechSkills: 3,
	}

	p.PrintMatchSummary(match)
	output := buf.String()

	assert.Contains(t, output, "MATCH SUMMARY")
	assert.Contains(t, output, "62.7%")
	assert.Contains(t, output, "60.0%")
	assert.Contains(t, output, "66.7%")
	assert.Contains(t, output, "(3 of 5 matched)")
	assert.Contains(t, output, "(2 of 3 matched)")
	assert.Contains(t, output, "Missing Keywords:")
	assert.Contains(t, output, "• developer")
	assert.Contains(t, output, "Missing Tech Skills:")
	assert.Contains(t, output, "• kubernetes")
}

func TestPrintMatchSummary_TruncatesLongMissLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	match := &types.MatchResult{
		KeywordMisses:    []string{"api", "cloud", "data", "micro", "scala", "terraform", "vault"},
		TotalJobKeywords: 7,
	}

	p.PrintMatchSummary(match)
	output := buf.String()

	assert.Contains(t, output, "• scala")
	assert.NotContains(t, output, "• terraform")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintMatchSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintStructure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	structure := &types.StructureResult{
		TotalLines:       12,
		SectionsFound:    []string{"contact", "experience", "skills"},
		SectionsCount:    3,
		StrongVerbsCount: 2,
		StrongVerbsFound: []string{"develop", "implement"},
	}

	p.PrintStructure(structure)
	output := buf.String()

	assert.Contains(t, output, "RESUME STRUCTURE")
	assert.Contains(t, output, "Lines:    12")
	assert.Contains(t, output, "Sections: 3 of 6")
	assert.Contains(t, output, "• contact")
	assert.Contains(t, output, "• experience")
	assert.Contains(t, output, "• skills")
	assert.Contains(t, output, "develop, implement")
}

func TestPrintStructure_TruncatesLongVerbList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	structure := &types.StructureResult{
		TotalLines:       3,
		StrongVerbsCount: 7,
		StrongVerbsFound: []string{"build", "create", "design", "develop", "implement", "lead", "manage"},
	}

	p.PrintStructure(structure)
	output := buf.String()

	assert.Contains(t, output, "build, create, design, develop, implement")
	assert.NotContains(t, output, "lead")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintStructure_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStructure(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations([]string{
		"Add missing technical skills to your skills section: kubernetes",
		"Use more action verbs",
	})
	output := buf.String()

	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "1. Add missing technical skills")
	assert.Contains(t, output, "2. Use more action verbs")
}

func TestPrintRecommendations_WrapsLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations([]string{
		"Add these important keywords from the job description: developer, experience, kubernetes, platform",
	})
	output := buf.String()

	// Wrapped lines keep their content instead of being truncated
	assert.Contains(t, output, "kubernetes")
	assert.Contains(t, output, "platform")
	assert.NotContains(t, output, "...")
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_Layout(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations([]string{"Use more action verbs"})
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "├"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected []string
	}{
		{"Short line stays whole", "hello world", 20, []string{"hello world"}},
		{"Splits on word boundary", "one two three four", 9, []string{"one two", "three", "four"}},
		{"Exact fit", "abcd efgh", 9, []string{"abcd efgh"}},
		{"Oversized word kept alone", "supercalifragilistic ok", 10, []string{"supercalifragilistic", "ok"}},
		{"Empty input", "", 10, []string{""}},
		{"Whitespace only", "   ", 10, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wrapText(tt.text, tt.width))
		})
	}
}
