package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "demo.appspot.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "https://api.resend.com", cfg.Email.BaseURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
}

func TestLoadSplitsOrigins(t *testing.T) {
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "demo.appspot.com")
	t.Setenv("ALLOWED_ORIGINS", "https://lumen.dev, https://www.lumen.dev ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://lumen.dev", "https://www.lumen.dev"}, cfg.Server.AllowedOrigins)
}

func TestValidateNamesMissingVariables(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: "8080"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_CREDENTIALS_PATH")
}
