package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, 90, cfg.AnalysisWindowDays)
	assert.Equal(t, 10, cfg.AnalysisMinSample)
	assert.Equal(t, 300, cfg.PeakHoursCacheTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ANALYSIS_WINDOW_DAYS", "30")
	t.Setenv("ANALYSIS_MIN_SAMPLE", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30, cfg.AnalysisWindowDays)
	assert.Equal(t, 5, cfg.AnalysisMinSample)
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("ANALYSIS_WINDOW_DAYS", "ninety")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.AnalysisWindowDays)
}
