package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/analysis"
	"github.com/jonathan/resume-reviewer/internal/annotate"
	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/db"
	"github.com/jonathan/resume-reviewer/internal/extract"
	"github.com/jonathan/resume-reviewer/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for analyzing resumes against job descriptions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// An explicit flag wins over the PORT environment variable.
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
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

	// History is optional; without DATABASE_URL the server runs stateless.
	var database *db.DB
	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return fmt.Errorf("failed to prepare database schema: %w", err)
		}
		log.Printf("Analysis history enabled")
	}

	srv := server.New(server.Config{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		MaxUploadMB: cfg.MaxUploadMB,
	}, analysis.New(pool), pool, extract.Parser{}, database)

	return srv.Start()
}
