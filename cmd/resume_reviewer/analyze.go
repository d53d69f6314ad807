package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/analysis"
	"github.com/jonathan/resume-reviewer/internal/annotate"
	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/extract"
	"github.com/jonathan/resume-reviewer/internal/observability"
	"github.com/jonathan/resume-reviewer/internal/validation"
)

var (
	analyzeResumePath string
	analyzeJobPath    string
	analyzeJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long: `Run one analysis without starting the server: extract text from a PDF or
DOCX resume, compare it against a job description text file, and print the
report.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumePath, "resume", "r", "", "Path to resume file (.pdf or .docx)")
	analyzeCmd.Flags().StringVarP(&analyzeJobPath, "job", "j", "", "Path to job description text file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw report as JSON")

	if err := analyzeCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := analyzeCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	// Cheap input checks run before the annotator spin-up.
	filename := filepath.Base(analyzeResumePath)
	if err := validation.CheckFilename(filename); err != nil {
		return err
	}

	resumeData, err := os.ReadFile(analyzeResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jobData, err := os.ReadFile(analyzeJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}
	jobDescription := strings.TrimSpace(string(jobData))
	if err := validation.CheckJobDescription(jobDescription); err != nil {
		return err
	}

	resumeText, err := extract.ParseResume(filename, resumeData)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}
	resumeText = extract.CleanText(resumeText)
	if err := validation.CheckResumeText(resumeText); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	pool := annotate.NewPool(annotate.Config{
		Model:          cfg.SpacyModel,
		Workers:        cfg.AnnotatorWorkers,
		ConfigDir:      cfg.AnnotatorConfigDir,
		PythonBin:      cfg.PythonBin,
		StartupTimeout: cfg.AnnotatorStartupTimeout,
	})
	if err := pool.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize annotator: %w", err)
	}
	defer pool.Close()

	report, err := analysis.New(pool).Analyze(context.Background(), resumeText, jobDescription)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, _ = fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintMatchSummary(&report.Match)
	printer.PrintStructure(&report.Structure)
	printer.PrintRecommendations(report.Recommendations)
	return nil
}
