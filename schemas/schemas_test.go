package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-reviewer/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"annotation.schema.json",
		"report.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestEmbeddedSchemas_MatchFiles(t *testing.T) {
	tests := []struct {
		file     string
		embedded string
	}{
		{"annotation.schema.json", AnnotationSchema},
		{"report.schema.json", ReportSchema},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(tt.file)
			require.NoError(t, err)
			assert.Equal(t, string(data), tt.embedded)
		})
	}
}

func TestAnnotationSchema_AcceptsWorkerResponse(t *testing.T) {
	response := `{
		"tokens": [
			{"text": "go", "lemma": "go", "pos": "PROPN", "is_stop": false, "is_punct": false},
			{"text": ".", "lemma": ".", "pos": "PUNCT", "is_stop": false, "is_punct": true}
		],
		"entities": [
			{"text": "docker", "label": "ORG"}
		]
	}`

	err := schemas.ValidateJSONString(AnnotationSchema, response)
	assert.NoError(t, err)
}

func TestAnnotationSchema_RejectsMissingFields(t *testing.T) {
	response := `{
		"tokens": [
			{"text": "go", "pos": "PROPN"}
		],
		"entities": []
	}`

	err := schemas.ValidateJSONString(AnnotationSchema, response)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestAnnotationSchema_RejectsErrorPayload(t *testing.T) {
	err := schemas.ValidateJSONString(AnnotationSchema, `{"error": "model not loaded"}`)
	assert.Error(t, err)
}

func TestReportSchema_AcceptsFullReport(t *testing.T) {
	report := `{
		"match": {
			"overall_score": 72.5,
			"keyword_score": 80.0,
			"tech_skill_score": 61.3,
			"keyword_matches": ["api", "engineer"],
			"keyword_misses": ["grpc"],
			"tech_skill_matches": ["docker", "python"],
			"tech_skill_misses": ["kubernetes"],
			"total_job_keywords": 5,
			"total_job_tech_skills": 3
		},
		"structure": {
			"total_lines": 24,
			"sections_found": ["contact", "experience", "skills"],
			"sections_count": 3,
			"strong_verbs_count": 2,
			"strong_verbs_found": ["develop", "implement"]
		},
		"recommendations": [
			"Consider highlighting experience with: kubernetes"
		]
	}`

	err := schemas.ValidateJSONString(ReportSchema, report)
	assert.NoError(t, err)
}

func TestReportSchema_RejectsUnknownSection(t *testing.T) {
	report := `{
		"match": {
			"overall_score": 10.0,
			"keyword_score": 10.0,
			"tech_skill_score": 10.0,
			"keyword_matches": [],
			"keyword_misses": [],
			"tech_skill_matches": [],
			"tech_skill_misses": [],
			"total_job_keywords": 0,
			"total_job_tech_skills": 0
		},
		"structure": {
			"total_lines": 1,
			"sections_found": ["hobbies"],
			"sections_count": 1,
			"strong_verbs_count": 0,
			"strong_verbs_found": []
		},
		"recommendations": ["x"]
	}`

	err := schemas.ValidateJSONString(ReportSchema, report)
	assert.Error(t, err, "section names outside the fixed taxonomy should be rejected")
}

func TestReportSchema_RejectsTooManyRecommendations(t *testing.T) {
	report := `{
		"match": {
			"overall_score": 10.0,
			"keyword_score": 10.0,
			"tech_skill_score": 10.0,
			"keyword_matches": [],
			"keyword_misses": [],
			"tech_skill_matches": [],
			"tech_skill_misses": [],
			"total_job_keywords": 0,
			"total_job_tech_skills": 0
		},
		"structure": {
			"total_lines": 1,
			"sections_found": [],
			"sections_count": 0,
			"strong_verbs_count": 0,
			"strong_verbs_found": []
		},
		"recommendations": ["a", "b", "c", "d", "e", "f"]
	}`

	err := schemas.ValidateJSONString(ReportSchema, report)
	assert.Error(t, err, "more than five recommendations should be rejected")
}
