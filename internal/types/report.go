// Package types provides type definitions for structured data used throughout the resume-reviewer system.
package types

// MatchResult holds the keyword and tech-skill comparison between a resume
// and a job description. Scores are percentages (0-100) rounded to one
// decimal. Lists are sorted ascending and untruncated; the HTTP layer caps
// the miss lists before responding.
type MatchResult struct {
	OverallScore       float64  `json:"overall_score"`
	KeywordScore       float64  `json:"keyword_score"`
	TechSkillScore     float64  `json:"tech_skill_score"`
	KeywordMatches     []string `json:"keyword_matches"`
	KeywordMisses      []string `json:"keyword_misses"`
	TechSkillMatches   []string `json:"tech_skill_matches"`
	TechSkillMisses    []string `json:"tech_skill_misses"`
	TotalJobKeywords   int      `json:"total_job_keywords"`
	TotalJobTechSkills int      `json:"total_job_tech_skills"`
}

// StructureResult describes the detected layout of a resume.
// SectionsFound preserves the fixed category order (contact, experience,
// education, skills, projects, certifications); StrongVerbsFound is a
// sorted list of distinct verb lemmas.
type StructureResult struct {
	TotalLines       int      `json:"total_lines"`
	SectionsFound    []string `json:"sections_found"`
	SectionsCount    int      `json:"sections_count"`
	StrongVerbsCount int      `json:"strong_verbs_count"`
	StrongVerbsFound []string `json:"strong_verbs_found"`
}

// Report is the complete analysis output for one resume/job pair.
type Report struct {
	Match           MatchResult     `json:"match"`
	Structure       StructureResult `json:"structure"`
	Recommendations []string        `json:"recommendations"`
}
