package analysis

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-reviewer/internal/types"
)

// Fixed weights for the overall match score.
const (
	keywordWeight   = 0.6
	techSkillWeight = 0.4
)

// Match compares a resume against a job description and returns the
// weighted match result. The job description's keyword and tech-skill sets
// are the universe: matches are entries the resume covers, misses are the
// rest. All lists come back sorted and untruncated.
func (e *Engine) Match(ctx context.Context, resumeText, jobText string) (*types.MatchResult, error) {
	var resumeKeywords, jobKeywords map[string]bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumeKeywords, err = e.ExtractKeywords(gctx, resumeText)
		return err
	})
	g.Go(func() error {
		var err error
		jobKeywords, err = e.ExtractKeywords(gctx, jobText)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resumeTechSkills := ExtractTechSkills(resumeText)
	jobTechSkills := ExtractTechSkills(jobText)

	keywordMatches, keywordMisses := diffSets(jobKeywords, resumeKeywords)
	techSkillMatches, techSkillMisses := diffSets(jobTechSkills, resumeTechSkills)

	// A job description with no extractable keywords scores zero; one with
	// no recognized tech skills scores full credit, since there is nothing
	// to miss.
	keywordScore := 0.0
	if len(jobKeywords) > 0 {
		keywordScore = float64(len(keywordMatches)) / float64(len(jobKeywords))
	}
	techSkillScore := 1.0
	if len(jobTechSkills) > 0 {
		techSkillScore = float64(len(techSkillMatches)) / float64(len(jobTechSkills))
	}

	overallScore := (keywordScore*keywordWeight + techSkillScore*techSkillWeight) * 100

	return &types.MatchResult{
		OverallScore:       round1(overallScore),
		KeywordScore:       round1(keywordScore * 100),
		TechSkillScore:     round1(techSkillScore * 100),
		KeywordMatches:     keywordMatches,
		KeywordMisses:      keywordMisses,
		TechSkillMatches:   techSkillMatches,
		TechSkillMisses:    techSkillMisses,
		TotalJobKeywords:   len(jobKeywords),
		TotalJobTechSkills: len(jobTechSkills),
	}, nil
}

// diffSets splits the job-side set into entries present in the resume set
// (matches) and entries absent from it (misses). Both slices are sorted.
func diffSets(job, resume map[string]bool) (matches, misses []string) {
	matches = make([]string, 0, len(job))
	misses = make([]string, 0)

	for entry := range job {
		if resume[entry] {
			matches = append(matches, entry)
		} else {
			misses = append(misses, entry)
		}
	}

	sort.Strings(matches)
	sort.Strings(misses)
	return matches, misses
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
