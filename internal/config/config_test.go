package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "BTCUSDT", cfg.Symbol)
	assert.Equal(t, 10000.0, cfg.StartingEquity)
	assert.Equal(t, 0.02, cfg.Limits.DayLossCapPct)
}

func TestLoadAppliesYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
symbol: ETHUSDT
starting_equity: 50000
limits:
  day_loss_cap_pct: 0.03
  per_trade_notional_cap: 5000
  max_trades_per_day: 10
  fail_closed: true
guardrails:
  min_equity: 1000
pipeline:
  regime_enabled: false
  min_qty: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ETHUSDT", cfg.Symbol)
	assert.Equal(t, 50000.0, cfg.StartingEquity)
	assert.Equal(t, 0.03, cfg.Limits.DayLossCapPct)
	assert.Equal(t, 5000.0, cfg.Limits.PerTradeNotionalCap)
	assert.Equal(t, 10, cfg.Limits.MaxTradesPerDay)
	assert.True(t, cfg.Limits.FailClosed)
	assert.Equal(t, 1000.0, cfg.Guardrails.MinEquity)
	assert.False(t, cfg.Pipeline.RegimeEnabled)
	assert.Equal(t, 0.5, cfg.Pipeline.MinQty)
}

func TestEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbol: ETHUSDT\n"), 0o644))

	t.Setenv("TRADING_SYMBOL", "SOLUSDT")
	t.Setenv("MAX_TRADES_PER_DAY", "7")
	t.Setenv("RISK_FAIL_CLOSED", "true")
	t.Setenv("POLL_INTERVAL", "30s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "SOLUSDT", cfg.Symbol)
	assert.Equal(t, 7, cfg.Limits.MaxTradesPerDay)
	assert.True(t, cfg.Limits.FailClosed)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.StartingEquity = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Symbol = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Limits.MaxDrawdownPct = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.PollInterval = 0
	assert.Error(t, cfg.Validate())
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("MAX_TRADES_PER_DAY", "not-a-number")
	t.Setenv("RISK_FAIL_CLOSED", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Limits.MaxTradesPerDay, cfg.Limits.MaxTradesPerDay)
	assert.False(t, cfg.Limits.FailClosed)
}
