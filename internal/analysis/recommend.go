package analysis

import (
	"strings"

	"github.com/jonathan/resume-reviewer/internal/types"
)

// Thresholds and caps for recommendation rules. Scores are compared on the
// 0-100 scale after rounding.
const (
	lowOverallScoreThreshold = 50
	lowTechSkillThreshold    = 70
	minSectionsExpected      = 4
	minStrongVerbsExpected   = 5

	maxRecommendations    = 5
	keywordMissesInAdvice = 5
	techMissesInAdvice    = 3
)

// Recommend derives up to five advice strings from the match and structure
// results. Rules run in a fixed order and each appends at most one entry,
// so when the cap truncates, the later structural advice is what drops.
func Recommend(match *types.MatchResult, structure *types.StructureResult) []string {
	var recommendations []string

	if match.OverallScore < lowOverallScoreThreshold {
		recommendations = append(recommendations,
			"Your resume has a low match score. Consider adding more relevant keywords and skills from the job description.")
	}

	if match.TechSkillScore < lowTechSkillThreshold {
		recommendations = append(recommendations,
			"Add more technical skills mentioned in the job description to strengthen your profile.")
	}

	if len(match.KeywordMisses) > 0 {
		recommendations = append(recommendations,
			"Consider incorporating these important keywords: "+joinFirst(match.KeywordMisses, keywordMissesInAdvice))
	}

	if len(match.TechSkillMisses) > 0 {
		recommendations = append(recommendations,
			"Consider highlighting experience with: "+joinFirst(match.TechSkillMisses, techMissesInAdvice))
	}

	if structure.SectionsCount < minSectionsExpected {
		recommendations = append(recommendations,
			"Your resume might be missing important sections. Consider adding sections like Skills, Projects, or Certifications.")
	}

	if structure.StrongVerbsCount < minStrongVerbsExpected {
		recommendations = append(recommendations,
			"Use more action verbs (like 'developed', 'implemented', 'managed') to make your experience more impactful.")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Your resume looks well-matched to the job description! Consider fine-tuning the language to match the company's tone.")
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

// joinFirst comma-joins up to n items.
func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
