// Package main provides the entry point for the Resume Reviewer API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_reviewer",
	Short: "Resume Reviewer HTTP API Server",
	Long:  "Resume Reviewer scores resumes against job descriptions by extracting keywords with spaCy, matching tech skills, and checking resume structure, served over REST or run as a one-shot CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
