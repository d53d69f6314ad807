// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-reviewer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchSummary outputs the scores and the keyword and tech-skill gaps.
func (p *Printer) PrintMatchSummary(match *types.MatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall:     %5.1f%%\n", match.OverallScore))
	sb.WriteString(fmt.Sprintf("Keywords:    %5.1f%%  (%d of %d matched)\n",
		match.KeywordScore, len(match.KeywordMatches), match.TotalJobKeywords))
	sb.WriteString(fmt.Sprintf("Tech skills: %5.1f%%  (%d of %d matched)\n",
		match.TechSkillScore, len(match.TechSkillMatches), match.TotalJobTechSkills))

	if len(match.KeywordMisses) > 0 {
		sb.WriteString("\nMissing Keywords:\n")
		count := min(len(match.KeywordMisses), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", match.KeywordMisses[i]))
		}
		if len(match.KeywordMisses) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(match.KeywordMisses)-maxItemsToShow))
		}
	}

	if len(match.TechSkillMisses) > 0 {
		sb.WriteString("\nMissing Tech Skills:\n")
		count := min(len(match.TechSkillMisses), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", match.TechSkillMisses[i]))
		}
		if len(match.TechSkillMisses) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(match.TechSkillMisses)-maxItemsToShow))
		}
	}

	p.printBox("MATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStructure outputs the detected resume layout.
func (p *Printer) PrintStructure(structure *types.StructureResult) {
	if structure == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Lines:    %d\n", structure.TotalLines))
	sb.WriteString(fmt.Sprintf("Sections: %d of 6\n", structure.SectionsCount))

	if len(structure.SectionsFound) > 0 {
		sb.WriteString("\nSections Found:\n")
		for _, section := range structure.SectionsFound {
			sb.WriteString(fmt.Sprintf("  • %s\n", section))
		}
	}

	if len(structure.StrongVerbsFound) > 0 {
		sb.WriteString("\nStrong Action Verbs:\n")
		count := min(len(structure.StrongVerbsFound), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(structure.StrongVerbsFound[:count], ", ")))
		if len(structure.StrongVerbsFound) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(structure.StrongVerbsFound)-maxItemsToShow))
		}
	}

	p.printBox("RESUME STRUCTURE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the suggested improvements, wrapped to fit
// the box.
func (p *Printer) PrintRecommendations(recommendations []string) {
	if len(recommendations) == 0 {
		return
	}

	var sb strings.Builder
	for i, rec := range recommendations {
		lines := wrapText(rec, boxWidth-7)
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, lines[0]))
		for _, line := range lines[1:] {
			sb.WriteString(fmt.Sprintf("   %s\n", line))
		}
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// wrapText breaks text into lines no longer than width, splitting on spaces.
// A single word longer than width stays on its own line.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
