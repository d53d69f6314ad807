package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvKeys are every variable Load reads. Tests clear them up front so
// the surrounding environment cannot leak in.
var configEnvKeys = []string{
	"PORT", "CORS_ORIGINS", "MAX_UPLOAD_MB", "DATABASE_URL",
	"SPACY_MODEL", "ANNOTATOR_WORKERS", "ANNOTATOR_CONFIG_DIR",
	"ANNOTATOR_STARTUP_TIMEOUT", "PYTHON_BIN",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		original, had := os.LookupEnv(key)
		os.Unsetenv(key)
		if had {
			key, original := key, original
			t.Cleanup(func() { os.Setenv(key, original) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, 16, cfg.MaxUploadMB)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "en_core_web_sm", cfg.SpacyModel)
	assert.Equal(t, 2, cfg.AnnotatorWorkers)
	assert.NotEmpty(t, cfg.AnnotatorConfigDir)
	assert.Equal(t, 120*time.Second, cfg.AnnotatorStartupTimeout)
	assert.Equal(t, "python3", cfg.PythonBin)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearConfigEnv(t)
	setenv(t, "PORT", "9000")
	setenv(t, "CORS_ORIGINS", "https://example.com")
	setenv(t, "MAX_UPLOAD_MB", "8")
	setenv(t, "DATABASE_URL", "postgres://localhost/reviewer")
	setenv(t, "ANNOTATOR_WORKERS", "4")
	setenv(t, "ANNOTATOR_STARTUP_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "https://example.com", cfg.CORSOrigins)
	assert.Equal(t, 8, cfg.MaxUploadMB)
	assert.Equal(t, "postgres://localhost/reviewer", cfg.DatabaseURL)
	assert.Equal(t, 4, cfg.AnnotatorWorkers)
	assert.Equal(t, 30*time.Second, cfg.AnnotatorStartupTimeout)
}

func TestLoad_UnparsableValuesFallBack(t *testing.T) {
	clearConfigEnv(t)
	setenv(t, "PORT", "not-a-number")
	setenv(t, "ANNOTATOR_STARTUP_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 120*time.Second, cfg.AnnotatorStartupTimeout)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"zero upload cap", func(c *Config) { c.MaxUploadMB = 0 }},
		{"negative workers", func(c *Config) { c.AnnotatorWorkers = -1 }},
		{"zero startup timeout", func(c *Config) { c.AnnotatorStartupTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:                    8080,
				MaxUploadMB:             16,
				AnnotatorWorkers:        2,
				AnnotatorStartupTimeout: time.Minute,
			}
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := &Config{MaxUploadMB: 16}
	assert.Equal(t, int64(16*1024*1024), cfg.MaxUploadBytes())
}

// setenv sets an environment variable for the duration of the test.
func setenv(t *testing.T, key, value string) {
	t.Helper()
	os.Setenv(key, value)
	t.Cleanup(func() { os.Unsetenv(key) })
}
