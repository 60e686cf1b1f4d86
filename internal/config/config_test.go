package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 18, cfg.Ingest.DefaultDecimals)
	assert.False(t, cfg.Ingest.AssumeUSD)
	assert.Len(t, cfg.Ingest.FieldAliases, 8)
	assert.Contains(t, cfg.Ingest.FieldAliases["wallet"], "userWallet")

	assert.Len(t, cfg.Scoring.Weights, 7)
	assert.Equal(t, 0.30, cfg.Scoring.Weights["borrow_repay_ratio"])
	assert.Equal(t, -0.25, cfg.Scoring.Weights["liquidation_count"])
	assert.Equal(t, 0.95, cfg.Scoring.BotFrequencyPercentile)
	assert.Equal(t, -0.5, cfg.Scoring.BotPenalty)
	assert.Equal(t, 0.5, cfg.Scoring.NoBorrowCredit)

	assert.Equal(t, 300, cfg.Report.LowScoreThreshold)
}

func TestLoad_YAMLOverride(t *testing.T) {
	content := `log_level: debug
ingest:
  assume_usd: true
  asset_prices:
    weth: 2000
scoring:
  bot_penalty: -0.25
report:
  low_score_threshold: 450
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Ingest.AssumeUSD)
	assert.Equal(t, 2000.0, cfg.Ingest.AssetPrices["weth"])
	assert.Equal(t, -0.25, cfg.Scoring.BotPenalty)
	assert.Equal(t, 450, cfg.Report.LowScoreThreshold)

	// Untouched keys keep their defaults.
	assert.Equal(t, 0.95, cfg.Scoring.BotFrequencyPercentile)
	assert.Equal(t, 18, cfg.Ingest.DefaultDecimals)
	assert.Len(t, cfg.Scoring.Weights, 7)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("AAVE_SCORE_REPORT_LOW_SCORE_THRESHOLD", "450")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 450, cfg.Report.LowScoreThreshold)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
