package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Analysis.PeriodYears)
	assert.Equal(t, 252, cfg.Analysis.BetaWindow)
	assert.Equal(t, 900, cfg.Report.ChartWidth)
	assert.Equal(t, 400, cfg.Report.ChartHeight)
	assert.NotEmpty(t, cfg.Provider.BaseURL)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/ratiolens.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratiolens.toml")
	content := `
environment = "production"

[server]
port = 9090

[analysis]
period_years = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Analysis.PeriodYears)

	// Untouched sections keep defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RATIOLENS_PORT", "7070")
	t.Setenv("RATIOLENS_LOG_LEVEL", "debug")
	t.Setenv("EODHD_API_KEY", "env-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "env-key", cfg.Provider.APIKey)
}

func TestLoadConfig_EODHDKeyPriority(t *testing.T) {
	t.Setenv("EODHD_API_KEY", "direct")
	t.Setenv("RATIOLENS_EODHD_API_KEY", "prefixed")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "direct", cfg.Provider.APIKey)
}

func TestGetFetchTimeout(t *testing.T) {
	c := AnalysisConfig{FetchTimeout: "90s"}
	assert.Equal(t, "1m30s", c.GetFetchTimeout().String())

	bad := AnalysisConfig{FetchTimeout: "not-a-duration"}
	assert.Equal(t, "1m0s", bad.GetFetchTimeout().String())
}

func TestIsFresh(t *testing.T) {
	now := time.Now()
	assert.True(t, IsFresh(now.Add(-time.Hour), FreshnessPrices))
	assert.False(t, IsFresh(now.Add(-25*time.Hour), FreshnessPrices))
	assert.True(t, IsFresh(now.Add(-6*24*time.Hour), FreshnessStatements))
	assert.False(t, IsFresh(now.Add(-8*24*time.Hour), FreshnessStatements))
	assert.False(t, IsFresh(time.Time{}, FreshnessPrices))
}
