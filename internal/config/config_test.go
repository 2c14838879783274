package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GOOGLE_APPS_SCRIPT_URL", "")
	t.Setenv("UPSTREAM_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, "7071", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GOOGLE_APPS_SCRIPT_URL", "https://script.google.com/macros/s/abc/exec")
	t.Setenv("UPSTREAM_TIMEOUT", "45s")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", cfg.GoogleAppsScriptURL)
	assert.Equal(t, 45*time.Second, cfg.UpstreamTimeout)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "7071", GoogleAppsScriptURL: "https://script.google.com/macros/s/abc/exec"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Port: "7071"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_APPS_SCRIPT_URL")

	cfg = &Config{Port: "7071", GoogleAppsScriptURL: "sem-esquema"}
	assert.Error(t, cfg.Validate())
}
