package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Analyzer.Seed = 11
	cfg.AI.Provider = "simulated"
	cfg.Logger.Level = "error"
	cfg.ApplyDefaults()
	return cfg
}

func TestRunAnalyzeJSON(t *testing.T) {
	var out bytes.Buffer
	start := time.Now().UTC().AddDate(0, 0, -40).Format("2006-01-02")
	err := runAnalyze(context.Background(), testConfig(), &analyzeOptions{tickers: "aapl,vale3", start: start, format: "json"}, &out)
	require.NoError(t, err)

	var run entity.AnalysisRun
	require.NoError(t, json.Unmarshal(out.Bytes(), &run))
	require.Len(t, run.Analyses, 2)
	assert.Equal(t, "VALE3", run.Analyses[1].Ticker)
}

func TestRunAnalyzeYAML(t *testing.T) {
	var out bytes.Buffer
	start := time.Now().UTC().AddDate(0, 0, -5).Format("2006-01-02")
	err := runAnalyze(context.Background(), testConfig(), &analyzeOptions{tickers: "MSFT", start: start, format: "yaml"}, &out)
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "{\"")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	analyses, ok := decoded["analyses"].([]any)
	require.True(t, ok)
	require.Len(t, analyses, 1)
	assert.Equal(t, "MSFT", analyses[0].(map[string]any)["ticker"])
}

func TestRunAnalyzeRejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	err := runAnalyze(context.Background(), testConfig(), &analyzeOptions{tickers: "AAPL", start: "2025-01-01", format: "xml"}, &out)
	assert.Error(t, err)

	err = runAnalyze(context.Background(), testConfig(), &analyzeOptions{tickers: " ", start: "2025-01-01", format: "json"}, &out)
	assert.EqualError(t, err, "Por favor, insira pelo menos um ticker de ação.")
}

func TestRunAnalyzeWritesCharts(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	start := time.Now().UTC().AddDate(0, 0, -60).Format("2006-01-02")
	opts := &analyzeOptions{tickers: "AAPL,PETR4", start: start, format: "json", chartDir: dir}
	require.NoError(t, runAnalyze(context.Background(), testConfig(), opts, &out))

	for _, file := range []string{"price.png", "normalized.png", "AAPL.png", "PETR4.png"} {
		data, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err, file)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), file)
	}
}
