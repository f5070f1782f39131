// Package config provides configuration loading from the environment plus
// JWT and password settings for the optional auth layer.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the runtime configuration for the tracker.
type Config struct {
	// Port is the HTTP listen port.
	Port int
	// DatabaseURL is the PostgreSQL connection URL.
	DatabaseURL string
	// GeminiAPIKey enables the document generation pipeline when set.
	GeminiAPIKey string
	// ArtifactsDir is the base directory for per-job folders.
	ArtifactsDir string
	// TemplatePath is the master resume LaTeX file.
	TemplatePath string
	// AuthPasswordHash is the bcrypt hash of the owner password. Auth is
	// disabled when empty.
	AuthPasswordHash string
	// UseBrowser enables the headless-browser scraping fallback.
	UseBrowser bool
	// Verbose enables debug logging.
	Verbose bool
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             8080,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		ArtifactsDir:     envOr("ARTIFACTS_DIR", "jobs"),
		TemplatePath:     envOr("RESUME_TEMPLATE", "templates/resume-template.tex"),
		AuthPasswordHash: os.Getenv("AUTH_PASSWORD_HASH"),
		UseBrowser:       envBool("USE_BROWSER"),
		Verbose:          envBool("VERBOSE"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.ArtifactsDir == "" {
		return fmt.Errorf("config error: artifacts directory cannot be empty")
	}
	return nil
}

// AuthEnabled reports whether the API requires authentication.
func (c *Config) AuthEnabled() bool {
	return c.AuthPasswordHash != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
