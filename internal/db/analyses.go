package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-reviewer/internal/schemas"
	"github.com/jonathan/resume-reviewer/internal/types"
	schemadefs "github.com/jonathan/resume-reviewer/schemas"
)

// Analysis is one stored analysis result. Report is populated on single-row
// lookups and left nil in list views.
type Analysis struct {
	ID           uuid.UUID     `json:"id"`
	Filename     string        `json:"filename" validate:"required"`
	OverallScore float64       `json:"overall_score" validate:"gte=0,lte=100"`
	KeywordScore float64       `json:"keyword_score" validate:"gte=0,lte=100"`
	TechScore    float64       `json:"tech_skill_score" validate:"gte=0,lte=100"`
	Report       *types.Report `json:"report,omitempty" validate:"required"`
	ResumeHash   string        `json:"resume_hash" validate:"required,len=64"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Validate validates the Analysis record using the validator.
func (a *Analysis) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// SaveAnalysis stores a finished report and returns the new row id. The
// record fields are validated and the report JSON is checked against the
// report schema before anything is written.
func (db *DB) SaveAnalysis(ctx context.Context, filename string, report *types.Report, resumeHash string) (uuid.UUID, error) {
	record := &Analysis{
		Filename:     filename,
		OverallScore: report.Match.OverallScore,
		KeywordScore: report.Match.KeywordScore,
		TechScore:    report.Match.TechSkillScore,
		Report:       report,
		ResumeHash:   resumeHash,
	}
	if err := record.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("invalid analysis record: %w", err)
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := schemas.ValidateJSONString(schemadefs.ReportSchema, string(reportJSON)); err != nil {
		return uuid.Nil, fmt.Errorf("report does not match schema: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (filename, overall_score, keyword_score, tech_score, report, resume_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		filename, report.Match.OverallScore, report.Match.KeywordScore, report.Match.TechSkillScore,
		reportJSON, resumeHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetAnalysis retrieves one stored analysis with its full report. Returns
// (nil, nil) when the id is unknown.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	var reportJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, filename, overall_score, keyword_score, tech_score, report, resume_hash, created_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Filename, &a.OverallScore, &a.KeywordScore, &a.TechScore, &reportJSON, &a.ResumeHash, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if len(reportJSON) > 0 {
		var report types.Report
		if err := json.Unmarshal(reportJSON, &report); err != nil {
			return nil, fmt.Errorf("failed to decode stored report: %w", err)
		}
		a.Report = &report
	}
	return &a, nil
}

// AnalysisFilters holds optional filters for listing analyses.
type AnalysisFilters struct {
	Filename string  // substring match, case-insensitive
	MinScore float64 // minimum overall score
	Limit    int     // defaults to 50
}

// ListAnalyses retrieves stored analyses, newest first.
func (db *DB) ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]Analysis, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	query := `SELECT id, filename, overall_score, keyword_score, tech_score, resume_hash, created_at
		FROM analyses WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Filename != "" {
		query += fmt.Sprintf(" AND filename ILIKE $%d", argNum)
		args = append(args, "%"+filters.Filename+"%")
		argNum++
	}
	if filters.MinScore > 0 {
		query += fmt.Sprintf(" AND overall_score >= $%d", argNum)
		args = append(args, filters.MinScore)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.Filename, &a.OverallScore, &a.KeywordScore, &a.TechScore, &a.ResumeHash, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}
