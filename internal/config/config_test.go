package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nameworth/nameworth/internal/valuation"
)

func TestLoad_DefaultsWithKeyFromEnv(t *testing.T) {
	t.Setenv("NAMEWORTH_API_KEY", "env-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Inference.APIKey)
	assert.Equal(t, 168, cfg.Cache.TTLHours)
	assert.Equal(t, 3, cfg.Batch.Concurrency)
	assert.Equal(t, 200, cfg.Batch.MaxDomains)
	assert.Equal(t, "silent", cfg.Valuation.FallbackMode)
}

func TestLoad_MissingAPIKeyFailsFast(t *testing.T) {
	t.Setenv("NAMEWORTH_API_KEY", "")

	_, err := Load("")
	var cfgErr *valuation.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("NAMEWORTH_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
inference:
  enabled: true
  base_url: https://example.test
  timeout_secs: 5
valuation:
  fallback_mode: error
  max_retries: 1
batch:
  concurrency: 5
  max_domains: 50
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test", cfg.Inference.BaseURL)
	assert.Equal(t, "error", cfg.Valuation.FallbackMode)
	assert.Equal(t, 1, cfg.Valuation.MaxRetries)
	assert.Equal(t, 5, cfg.Batch.Concurrency)
	assert.Equal(t, 50, cfg.Batch.MaxDomains)

	orc := cfg.OrchestratorConfig()
	assert.Equal(t, valuation.FallbackError, orc.FallbackMode)
	assert.Equal(t, 1, orc.MaxRetries)
}

func TestValidate_RejectsBadFallbackMode(t *testing.T) {
	cfg := Default()
	cfg.Inference.APIKey = "k"
	cfg.Valuation.FallbackMode = "maybe"

	var cfgErr *valuation.ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
}

func TestValidate_RejectsNegativeMaxRetries(t *testing.T) {
	cfg := Default()
	cfg.Inference.APIKey = "k"
	cfg.Valuation.MaxRetries = -1

	var cfgErr *valuation.ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
}

func TestValidate_DisabledInferenceNeedsNoKey(t *testing.T) {
	cfg := Default()
	cfg.Inference.Enabled = false
	cfg.Inference.APIKey = ""

	assert.NoError(t, cfg.Validate())
}
