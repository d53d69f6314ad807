package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/validation"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported resume formats",
	Long:  `Print the resume file formats the analyzer accepts and the upload size cap.`,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Supported formats: %s\n", strings.Join(validation.AllowedExtensions(), ", "))
	_, _ = fmt.Fprintf(os.Stdout, "Maximum file size: %dMB\n", cfg.MaxUploadMB)
	return nil
}
