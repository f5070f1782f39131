package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ARTIFACTS_DIR", "")
	t.Setenv("RESUME_TEMPLATE", "")
	t.Setenv("AUTH_PASSWORD_HASH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "jobs", cfg.ArtifactsDir)
	assert.Equal(t, "templates/resume-template.tex", cfg.TemplatePath)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/crackats")
	t.Setenv("ARTIFACTS_DIR", "/data/jobs")
	t.Setenv("AUTH_PASSWORD_HASH", "$2a$12$hash")
	t.Setenv("USE_BROWSER", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/crackats", cfg.DatabaseURL)
	assert.Equal(t, "/data/jobs", cfg.ArtifactsDir)
	assert.True(t, cfg.AuthEnabled())
	assert.True(t, cfg.UseBrowser)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: 8080, ArtifactsDir: "jobs"}
	assert.NoError(t, cfg.Validate())

	cfg.ArtifactsDir = ""
	assert.Error(t, cfg.Validate())
}
