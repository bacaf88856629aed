package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/repository"
	"golang-stock-analyzer/internal/analyzer/rules"
	"golang-stock-analyzer/internal/analyzer/service"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/chart"
	"golang-stock-analyzer/pkg/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type analyzeOptions struct {
	tickers  string
	start    string
	format   string
	chartDir string
	seed     uint64
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Runs one analysis and prints the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("seed") {
				cfg.Analyzer.Seed = opts.seed
			}
			return runAnalyze(cmd.Context(), cfg, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.tickers, "tickers", "t", "", "Comma separated tickers, e.g. \"AAPL,PETR4\"")
	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&opts.chartDir, "chart-dir", "", "Write PNG charts to this directory")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed for a reproducible run")
	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, opts *analyzeOptions, out io.Writer) error {
	if opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("unsupported format %q", opts.format)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	aiRepo, err := repository.NewAIRepository(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	svc := service.NewAnalyzerService(cfg, appLogger, aiRepo, repository.NewMemoryAnalysisStore(cfg.Analyzer.ResultTTL), nil)
	run, err := svc.Analyze(ctx, dto.AnalyzeRequest{Tickers: opts.tickers, StartDate: opts.start})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return errors.New(rules.Message(svc.Locale(), service.MessageKey(err)))
		}
		return err
	}

	if opts.chartDir != "" {
		if err := writeCharts(opts.chartDir, run, chart.Options{Width: cfg.Chart.Width, Height: cfg.Chart.Height}, appLogger); err != nil {
			return err
		}
	}
	return writeRun(out, run, opts.format)
}

func writeRun(w io.Writer, run *entity.AnalysisRun, format string) error {
	raw, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	if format == "json" {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}

	// Going through JSON keeps the field names and null handling identical in both formats.
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("failed to convert run to yaml: %w", err)
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles inherited from the JSON source.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func writeCharts(dir string, run *entity.AnalysisRun, opts chart.Options, log *logger.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	type pending struct {
		file   string
		render func() ([]byte, error)
	}
	charts := []pending{
		{"price.png", func() ([]byte, error) { return chart.RenderTableChart("Price", "%.2f", run.PriceTable, opts) }},
		{"normalized.png", func() ([]byte, error) {
			return chart.RenderTableChart("Normalized (base 100)", "%.0f", run.NormalizedTable, opts)
		}},
	}
	for _, a := range run.Analyses {
		charts = append(charts, pending{a.Ticker + ".png", func() ([]byte, error) { return chart.RenderStockChart(a, opts) }})
	}

	for _, c := range charts {
		png, err := c.render()
		if errors.Is(err, chart.ErrNotEnoughData) {
			log.Warn("Skipping chart", logger.StringField("file", c.file), logger.ErrorField(err))
			continue
		}
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, c.file), png, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.file, err)
		}
	}
	return nil
}
