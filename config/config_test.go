package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spweights/automodel"
	"github.com/katalvlaran/spweights/config"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spweights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, 0.1, cfg.Significance)
	assert.Equal(t, "GMM_COMBO", cfg.ModelType)
	assert.Equal(t, "uniform", cfg.Kernel.Function)
	assert.Equal(t, 2, cfg.Kernel.K)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	t.Parallel()

	path := write(t, `
significance: 0.05
model_type: gmm_hac
kernel:
  function: Gaussian
  k: 4
weights:
  row_standardize: true
log:
  format: json
output:
  json: true
  store: runs.db
`)
	cfg, used, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 0.05, cfg.Significance)
	assert.Equal(t, automodel.GMMHAC, cfg.ModelTypeValue())
	assert.Equal(t, "Gaussian", cfg.Kernel.Function)
	assert.Equal(t, 4, cfg.Kernel.K)
	assert.True(t, cfg.Weights.RowStandardize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Output.JSON)
	assert.Equal(t, "runs.db", cfg.Output.Store)
}

func TestLoadFromPathInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"significance", "significance: 1.5\n"},
		{"model type", "model_type: ML_LAG\n"},
		{"kernel", "kernel:\n  function: cosine\n"},
		{"k", "kernel:\n  k: -1\n"},
		{"log format", "log:\n  format: xml\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := config.LoadFromPath(write(t, tc.body))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, _, err := config.LoadFromPath(write(t, "significance: [\n"))
	assert.Error(t, err)
	_, _, err = config.LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.Kernel.K = 5
	require.NoError(t, cfg.Save(path))

	back, _, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestFindConfigPathFromEnv(t *testing.T) {
	path := write(t, "significance: 0.2\n")
	t.Setenv(config.EnvConfigPath, path)

	assert.Equal(t, path, config.FindConfigPath())
	cfg, used, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 0.2, cfg.Significance)
}
