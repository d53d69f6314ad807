// Package config loads server and annotator settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// configDirName is the per-user directory holding the annotator virtualenv
// and worker script.
const configDirName = "resume-reviewer"

// Config holds every runtime setting. Values come from environment
// variables; defaults suit a local development setup.
type Config struct {
	// HTTP server
	Port        int    // PORT
	CORSOrigins string // CORS_ORIGINS
	MaxUploadMB int    // MAX_UPLOAD_MB

	// Analysis history (optional; empty disables the history routes)
	DatabaseURL string // DATABASE_URL

	// Annotator pool
	SpacyModel              string        // SPACY_MODEL
	AnnotatorWorkers        int           // ANNOTATOR_WORKERS
	AnnotatorConfigDir      string        // ANNOTATOR_CONFIG_DIR
	AnnotatorStartupTimeout time.Duration // ANNOTATOR_STARTUP_TIMEOUT
	PythonBin               string        // PYTHON_BIN
}

// Load reads configuration from the environment and validates it. Call
// godotenv.Load beforehand if a .env file should participate.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		CORSOrigins: getEnvString("CORS_ORIGINS", "*"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 16),
		DatabaseURL: getEnvString("DATABASE_URL", ""),

		SpacyModel:              getEnvString("SPACY_MODEL", "en_core_web_sm"),
		AnnotatorWorkers:        getEnvInt("ANNOTATOR_WORKERS", 2),
		AnnotatorConfigDir:      getEnvString("ANNOTATOR_CONFIG_DIR", defaultConfigDir()),
		AnnotatorStartupTimeout: getEnvDuration("ANNOTATOR_STARTUP_TIMEOUT", 120*time.Second),
		PythonBin:               getEnvString("PYTHON_BIN", "python3"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("config error: MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.AnnotatorWorkers <= 0 {
		return fmt.Errorf("config error: ANNOTATOR_WORKERS must be positive, got %d", c.AnnotatorWorkers)
	}
	if c.AnnotatorStartupTimeout <= 0 {
		return fmt.Errorf("config error: ANNOTATOR_STARTUP_TIMEOUT must be positive, got %s", c.AnnotatorStartupTimeout)
	}
	return nil
}

// MaxUploadBytes returns the request body cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// defaultConfigDir resolves ~/.config/resume-reviewer, falling back to the
// temp directory when the home directory is unknown.
func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), configDirName)
	}
	return filepath.Join(home, ".config", configDirName)
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
