package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-reviewer/internal/annotate/annotatetest"
)

func TestAnalyze_FullReport(t *testing.T) {
	engine := New(scenarioFake())

	resume := "Email: jon@example.com | LinkedIn\n" +
		"Work Experience\n" +
		"Developed and implemented a REST API using Python and Docker\n" +
		"Education: BS Computer Science\n" +
		"Skills: Python, Docker, Git"
	job := "Looking for a Python developer with Docker and Kubernetes experience"

	report, err := engine.Analyze(context.Background(), resume, job)
	require.NoError(t, err)

	assert.Equal(t, 60.0, report.Match.KeywordScore)
	assert.Equal(t, 66.7, report.Match.TechSkillScore)
	assert.Equal(t, 62.7, report.Match.OverallScore)
	assert.Equal(t, []string{"docker", "experience", "python"}, report.Match.KeywordMatches)
	assert.Equal(t, []string{"developer", "kubernetes"}, report.Match.KeywordMisses)
	assert.Equal(t, []string{"docker", "python"}, report.Match.TechSkillMatches)
	assert.Equal(t, []string{"kubernetes"}, report.Match.TechSkillMisses)

	assert.Equal(t, []string{"contact", "experience", "education", "skills"}, report.Structure.SectionsFound)
	assert.Equal(t, 5, report.Structure.TotalLines)
	assert.Equal(t, []string{"develop", "implement"}, report.Structure.StrongVerbsFound)

	require.Len(t, report.Recommendations, 4)
	assert.Contains(t, report.Recommendations[0], "technical skills")
	assert.Contains(t, report.Recommendations[1], "keywords: developer, kubernetes")
	assert.Contains(t, report.Recommendations[2], "experience with: kubernetes")
	assert.Contains(t, report.Recommendations[3], "action verbs")
}

func TestAnalyze_Deterministic(t *testing.T) {
	engine := New(scenarioFake())

	resume := "Developed a Python service\nSkills: Docker"
	job := "Python and Docker experience"

	first, err := engine.Analyze(context.Background(), resume, job)
	require.NoError(t, err)
	second, err := engine.Analyze(context.Background(), resume, job)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_AnnotatorError(t *testing.T) {
	fake := annotatetest.NewFake()
	fake.Err = errors.New("worker exited")
	engine := New(fake)

	_, err := engine.Analyze(context.Background(), "resume text", "job text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker exited")
}
