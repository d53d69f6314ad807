package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/resume-reviewer/internal/db"
	"github.com/jonathan/resume-reviewer/internal/extract"
	"github.com/jonathan/resume-reviewer/internal/validation"
)

// Miss lists are truncated in the response only; the engine output and the
// stored report keep them whole.
const (
	maxKeywordMisses   = 10
	maxTechSkillMisses = 5
)

// AnalyzeResponse is the response for POST /api/analyze
type AnalyzeResponse struct {
	Success  bool            `json:"success"`
	Analysis AnalysisPayload `json:"analysis"`
	Metadata MetadataPayload `json:"metadata"`
}

// AnalysisPayload carries the report portion of an analyze response
type AnalysisPayload struct {
	OverallScore     float64          `json:"overall_score"`
	KeywordScore     float64          `json:"keyword_score"`
	TechSkillScore   float64          `json:"tech_skill_score"`
	KeywordMatches   []string         `json:"keyword_matches"`
	KeywordMisses    []string         `json:"keyword_misses"`
	TechSkillMatches []string         `json:"tech_skill_matches"`
	TechSkillMisses  []string         `json:"tech_skill_misses"`
	Structure        StructurePayload `json:"structure"`
	Recommendations  []string         `json:"recommendations"`
}

// StructurePayload carries the structure portion of an analyze response
type StructurePayload struct {
	SectionsFound    []string `json:"sections_found"`
	SectionsCount    int      `json:"sections_count"`
	StrongVerbsCount int      `json:"strong_verbs_count"`
}

// MetadataPayload carries request facts echoed back to the client
type MetadataPayload struct {
	Filename             string `json:"filename"`
	ResumeLength         int    `json:"resume_length"`
	JobDescriptionLength int    `json:"job_description_length"`
	TotalJobKeywords     int    `json:"total_job_keywords"`
	TotalJobTechSkills   int    `json:"total_job_tech_skills"`
	AnalysisID           string `json:"analysis_id,omitempty"`
}

// handleAnalyze runs the analysis pipeline for one multipart upload:
// validate, extract, clean, analyze, respond.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes())

	if err := r.ParseMultipartForm(s.maxUploadBytes()); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.analyzeError(w, err)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Bad request")
		return
	}

	file, header, err := r.FormFile("resume_file")
	if err != nil {
		s.analyzeError(w, validation.ErrNoResumeFile)
		return
	}
	defer file.Close()

	if !r.PostForm.Has("job_description") {
		s.analyzeError(w, validation.ErrNoJobDescription)
		return
	}
	jobDescription := strings.TrimSpace(r.PostFormValue("job_description"))

	if err := validation.CheckFilename(header.Filename); err != nil {
		s.analyzeError(w, err)
		return
	}
	if err := validation.CheckJobDescription(jobDescription); err != nil {
		s.analyzeError(w, err)
		return
	}

	filename := sanitizeFilename(header.Filename)
	data, err := io.ReadAll(file)
	if err != nil {
		s.analyzeError(w, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	log.Printf("Processing resume file: %s", filename)
	resumeText, err := s.parser.Parse(filename, data)
	if err != nil {
		s.analyzeError(w, err)
		return
	}
	resumeText = extract.CleanText(resumeText)
	if err := validation.CheckResumeText(resumeText); err != nil {
		s.analyzeError(w, err)
		return
	}

	report, err := s.engine.Analyze(r.Context(), resumeText, jobDescription)
	if err != nil {
		log.Printf("Error during analysis: %v", err)
		s.analyzeError(w, err)
		return
	}

	// History is best-effort; a storage fault must not fail the analysis
	var analysisID string
	if s.db != nil {
		id, err := s.db.SaveAnalysis(r.Context(), filename, report, extract.Hash(resumeText))
		if err != nil {
			log.Printf("Failed to save analysis: %v", err)
		} else {
			analysisID = id.String()
		}
	}

	log.Printf("Analysis completed successfully. Overall score: %.1f", report.Match.OverallScore)
	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Success: true,
		Analysis: AnalysisPayload{
			OverallScore:     report.Match.OverallScore,
			KeywordScore:     report.Match.KeywordScore,
			TechSkillScore:   report.Match.TechSkillScore,
			KeywordMatches:   report.Match.KeywordMatches,
			KeywordMisses:    capList(report.Match.KeywordMisses, maxKeywordMisses),
			TechSkillMatches: report.Match.TechSkillMatches,
			TechSkillMisses:  capList(report.Match.TechSkillMisses, maxTechSkillMisses),
			Structure: StructurePayload{
				SectionsFound:    report.Structure.SectionsFound,
				SectionsCount:    report.Structure.SectionsCount,
				StrongVerbsCount: report.Structure.StrongVerbsCount,
			},
			Recommendations: report.Recommendations,
		},
		Metadata: MetadataPayload{
			Filename:             filename,
			ResumeLength:         utf8.RuneCountInString(resumeText),
			JobDescriptionLength: utf8.RuneCountInString(jobDescription),
			TotalJobKeywords:     report.Match.TotalJobKeywords,
			TotalJobTechSkills:   report.Match.TotalJobTechSkills,
			AnalysisID:           analysisID,
		},
	})
}

// analyzeError maps a pipeline error to its HTTP response. Input rejections
// carry their own client-facing messages; everything else is wrapped in the
// generic analysis failure shape.
func (s *Server) analyzeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	switch status {
	case http.StatusRequestEntityTooLarge:
		s.errorResponse(w, status, fmt.Sprintf("File too large. Maximum size is %dMB", s.maxUploadMB))
	case http.StatusBadRequest:
		s.errorResponse(w, status, err.Error())
	default:
		s.errorResponse(w, status, fmt.Sprintf("Analysis failed: %v", err))
	}
}

// handleListAnalyses returns stored analyses, newest first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	filters := db.AnalysisFilters{
		Filename: r.URL.Query().Get("filename"),
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		filters.Limit = limit
	}
	if v := r.URL.Query().Get("min_score"); v != "" {
		minScore, err := strconv.ParseFloat(v, 64)
		if err != nil || minScore < 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid min_score parameter")
			return
		}
		filters.MinScore = minScore
	}

	analyses, err := s.db.ListAnalyses(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if analyses == nil {
		analyses = []db.Analysis{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analyses": analyses,
		"count":    len(analyses),
	})
}

// handleGetAnalysis returns one stored analysis with its full report
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID format")
		return
	}

	analysis, err := s.db.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if analysis == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// capList returns at most n items from list, preserving order.
func capList(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

// sanitizeFilename reduces an uploaded filename to its base name so client
// supplied paths never reach logs, storage, or the response.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
