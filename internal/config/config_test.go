package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2000, cfg.ChunkSize)
	assert.Equal(t, 10, cfg.QuizSize)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 3000, cfg.Import.SingleChunkThreshold)
	assert.Equal(t, 2*time.Minute, cfg.Gateway.GenTimeout)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
log_level: debug
quiz_size: 20
llm:
  provider: ollama
  ollama:
    model: mistral
import:
  batch_size: 2
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 20, cfg.QuizSize)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "mistral", cfg.LLM.Ollama.Model)
	assert.Equal(t, 2, cfg.Import.BatchSize)

	// Untouched keys keep their defaults.
	assert.Equal(t, 2000, cfg.ChunkSize)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Ollama.BaseURL)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nincs.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - nem: [valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvApiKeyApplies(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "kulcs-123")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "kulcs-123", cfg.LLM.Gemini.APIKey)
}
