package analysis

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-reviewer/internal/types"
)

// sectionPatterns maps each resume section category to the alternation that
// detects it. Categories are checked, and reported, in this order.
var sectionPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"contact", regexp.MustCompile(`email|phone|address|linkedin`)},
	{"experience", regexp.MustCompile(`experience|work|employment|career`)},
	{"education", regexp.MustCompile(`education|degree|university|college`)},
	{"skills", regexp.MustCompile(`skills|technologies|competencies`)},
	{"projects", regexp.MustCompile(`projects|portfolio`)},
	{"certifications", regexp.MustCompile(`certifications|certificates`)},
}

// strongVerbs is the vocabulary of strong action verbs, held in lemma form
// so annotated verb lemmas can be matched directly.
var strongVerbs = map[string]bool{
	"achieve": true, "build": true, "coordinate": true, "create": true,
	"deliver": true, "design": true, "develop": true, "implement": true,
	"improve": true, "increase": true, "launch": true, "lead": true,
	"manage": true, "optimize": true, "reduce": true, "supervise": true,
}

// AnalyzeStructure inspects the layout and verb usage of a resume: which of
// the six section categories appear, how many non-blank lines the text has,
// and which strong action verbs (by lemma) it uses.
func (e *Engine) AnalyzeStructure(ctx context.Context, resumeText string) (*types.StructureResult, error) {
	totalLines := 0
	for _, line := range strings.Split(resumeText, "\n") {
		if strings.TrimSpace(line) != "" {
			totalLines++
		}
	}

	lower := strings.ToLower(resumeText)

	sectionsFound := make([]string, 0, len(sectionPatterns))
	for _, section := range sectionPatterns {
		if section.pattern.MatchString(lower) {
			sectionsFound = append(sectionsFound, section.name)
		}
	}

	ann, err := e.annotator.Annotate(ctx, lower)
	if err != nil {
		return nil, fmt.Errorf("structure analysis failed: %w", err)
	}

	verbsFound := make(map[string]bool)
	for _, token := range ann.Tokens {
		if token.POS == "VERB" && strongVerbs[token.Lemma] {
			verbsFound[token.Lemma] = true
		}
	}

	strongVerbsFound := make([]string, 0, len(verbsFound))
	for verb := range verbsFound {
		strongVerbsFound = append(strongVerbsFound, verb)
	}
	sort.Strings(strongVerbsFound)

	return &types.StructureResult{
		TotalLines:       totalLines,
		SectionsFound:    sectionsFound,
		SectionsCount:    len(sectionsFound),
		StrongVerbsCount: len(verbsFound),
		StrongVerbsFound: strongVerbsFound,
	}, nil
}
