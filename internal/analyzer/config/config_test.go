package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: analyzer-test
analyzer:
  max_tickers: 5
  result_ttl: 10m
  indicators:
    sma_periods: [10, 30]
gemini:
  api_key: secret
watchlist:
  tickers: [AAPL, PETR4]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "analyzer-test", cfg.App.Name)
	assert.Equal(t, 5, cfg.Analyzer.MaxTickers)
	assert.Equal(t, 10*time.Minute, cfg.Analyzer.ResultTTL)
	assert.Equal(t, []int{10, 30}, cfg.Analyzer.Indicators.SMAPeriods)
	assert.Equal(t, 20, cfg.Analyzer.Indicators.BollingerPeriod)
	assert.Equal(t, 2.0, cfg.Analyzer.Indicators.BollingerK)
	assert.Equal(t, "synthetic", cfg.Analyzer.OscillatorMode)
	assert.Equal(t, "memory", cfg.Analyzer.ResultStore)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, []string{"AAPL", "PETR4"}, cfg.Watchlist.Tickers)
	assert.Equal(t, 8080, cfg.API.Port)
}

func TestApplyDefaultsOnZeroConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, 10, cfg.Analyzer.MaxTickers)
	assert.Equal(t, time.Hour, cfg.Analyzer.ResultTTL)
	assert.Equal(t, []int{20, 50}, cfg.Analyzer.Indicators.SMAPeriods)
	assert.Equal(t, "pt-BR", cfg.Analyzer.Locale)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 3, cfg.Consumer.MaxRetry)
}
