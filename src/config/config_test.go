package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path string, cfg map[string]any) {
	t.Helper()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "groq", cfg.Model.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Model.Model)
	assert.Equal(t, "https://serpapi.com", cfg.Search.BaseURL)
	assert.Equal(t, "USD", cfg.Search.Currency)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Storage.DatabasePath)

	require.NoError(t, NewValidator().Validate(cfg))
}

func TestLoadMergesLayersInOrder(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "user.json")
	projectPath := filepath.Join(dir, "project.json")

	writeConfig(t, userPath, map[string]any{
		"model":   map[string]any{"model": "user-model", "temperature": 0.2},
		"logging": map[string]any{"level": "debug"},
	})
	writeConfig(t, projectPath, map[string]any{
		"model": map[string]any{"model": "project-model"},
	})

	loader := NewLoader(ConfigPrecedence{
		UserConfig:    userPath,
		ProjectConfig: projectPath,
	})
	cfg, err := loader.Load()
	require.NoError(t, err)

	// project layer overrides user layer, untouched fields survive
	assert.Equal(t, "project-model", cfg.Model.Model)
	assert.Equal(t, 0.2, cfg.Model.Temperature)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "groq", cfg.Model.Provider)
}

func TestLoadMissingFilesIgnored(t *testing.T) {
	loader := NewLoader(ConfigPrecedence{
		UserConfig:    filepath.Join(t.TempDir(), "missing.json"),
		ProjectConfig: filepath.Join(t.TempDir(), "also-missing.json"),
	})
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.Model.Provider)
}

func TestLoadInvalidJSONFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	loader := NewLoader(ConfigPrecedence{UserConfig: path})
	_, err := loader.Load()
	require.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-env-key")
	t.Setenv("SERPAPI_API_KEY", "serp-env-key")
	t.Setenv("SENDGRID_API_KEY", "sendgrid-env-key")
	t.Setenv("VOYAGENT_MODEL", "env-model")
	t.Setenv("VOYAGENT_LOG_LEVEL", "warn")
	t.Setenv("VOYAGENT_EMAIL_TO", "me@example.com")

	loader := NewLoader(ConfigPrecedence{EnvironmentPrefix: "VOYAGENT"})
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "groq-env-key", cfg.Model.APIKey)
	assert.Equal(t, "serp-env-key", cfg.Search.APIKey)
	assert.Equal(t, "sendgrid-env-key", cfg.Email.APIKey)
	assert.Equal(t, "env-model", cfg.Model.Model)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "me@example.com", cfg.Email.DefaultRecipient)
}

func TestPrefixedKeyBeatsProviderNative(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "native")
	t.Setenv("VOYAGENT_MODEL_API_KEY", "prefixed")

	loader := NewLoader(ConfigPrecedence{EnvironmentPrefix: "VOYAGENT"})
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Model.APIKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad provider", func(c *Config) { c.Model.Provider = "carrier-pigeon" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad email", func(c *Config) { c.Email.FromAddress = "not-an-email" }},
		{"bad currency", func(c *Config) { c.Search.Currency = "DOLLARS" }},
		{"bad temperature", func(c *Config) { c.Model.Temperature = 5.0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := NewValidator().Validate(cfg)
			require.Error(t, err)

			var vErr ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	loader := NewLoader(ConfigPrecedence{})

	cfg := DefaultConfig()
	cfg.Model.Model = "saved-model"
	require.NoError(t, loader.SaveFile(cfg, path))

	loaded := NewLoader(ConfigPrecedence{UserConfig: path})
	got, err := loaded.Load()
	require.NoError(t, err)
	assert.Equal(t, "saved-model", got.Model.Model)
}
