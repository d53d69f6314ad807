// Package analysis implements the resume analysis engine: keyword and
// tech-skill extraction, weighted match scoring, resume structure analysis,
// and recommendation generation. All operations are deterministic and free
// of shared mutable state; an Engine is safe for concurrent use.
package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-reviewer/internal/annotate"
	"github.com/jonathan/resume-reviewer/internal/types"
)

// Engine analyzes resumes against job descriptions. It holds the annotation
// collaborator used for linguistic analysis; everything else is stateless.
type Engine struct {
	annotator annotate.Annotator
}

// New creates an Engine backed by the given annotator.
func New(annotator annotate.Annotator) *Engine {
	return &Engine{annotator: annotator}
}

// Analyze produces the full report for one resume/job pair: match scores,
// structure analysis, and recommendations. Both inputs are expected to be
// cleaned, non-empty text; the match and structure branches run in parallel.
func (e *Engine) Analyze(ctx context.Context, resumeText, jobText string) (*types.Report, error) {
	var (
		match     *types.MatchResult
		structure *types.StructureResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		match, err = e.Match(gctx, resumeText, jobText)
		return err
	})
	g.Go(func() error {
		var err error
		structure, err = e.AnalyzeStructure(gctx, resumeText)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.Report{
		Match:           *match,
		Structure:       *structure,
		Recommendations: Recommend(match, structure),
	}, nil
}
