package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webcopy.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_EnvOnlyUsesDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.GoogleAPIKey)
	assert.Equal(t, DefaultOutputRoot, cfg.OutputRoot)
	assert.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	assert.Equal(t, DefaultLogDir, cfg.LogDir)
	assert.Empty(t, cfg.Models)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
google_api_key: from-file
output_root: /tmp/file-root
max_iterations: 10
models:
  - id: gemini-test
    description: test model
    rate_limit:
      calls: 2
      window_seconds: 30
    daily_limit: 5
`)
	t.Setenv("GOOGLE_API_KEY", "from-env")
	t.Setenv("WEBCOPY_OUTPUT_ROOT", "")
	t.Setenv("WEBCOPY_MAX_ITERATIONS", "20")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GoogleAPIKey)
	assert.Equal(t, "/tmp/file-root", cfg.OutputRoot)
	assert.Equal(t, 20, cfg.MaxIterations)
	require.Len(t, cfg.Models, 1)
	assert.Equal(t, "gemini-test", cfg.Models[0].ID)
	require.NotNil(t, cfg.Models[0].RateLimit)
	assert.Equal(t, 2, cfg.Models[0].RateLimit.Calls)
	assert.Equal(t, 30, cfg.Models[0].RateLimit.WindowSeconds)
	assert.Equal(t, 5, cfg.Models[0].DailyLimit)
}

func TestLoad_NonIntegerEnvOverride(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "secret")
	t.Setenv("WEBCOPY_MAX_ITERATIONS", "abc")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBCOPY_MAX_ITERATIONS")
}

func TestLoad_IntegerEnvOverrideToleratesSpaces(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "secret")
	t.Setenv("WEBCOPY_MAX_ITERATIONS", " 40 ")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

	require.NoError(t, err)
	assert.Equal(t, 40, cfg.MaxIterations)
}

func TestLoad_InvalidModels(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "secret")

	tests := []struct {
		name string
		body string
	}{
		{"missing id", "models:\n  - description: x\n"},
		{"duplicate id", "models:\n  - id: a\n  - id: a\n"},
		{"zero calls", "models:\n  - id: a\n    rate_limit: {calls: 0, window_seconds: 60}\n"},
		{"negative daily", "models:\n  - id: a\n    daily_limit: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "secret")

	_, err := Load(writeConfig(t, "models: [unterminated"))
	assert.Error(t, err)
}
