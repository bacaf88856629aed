package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/repository"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fakeAIRepository struct {
	mu     sync.Mutex
	fail   map[string]bool
	calls  []string
	panics map[string]bool
}

func (f *fakeAIRepository) GenerateStockReport(_ context.Context, request *dto.StockReportRequest) (*dto.StockReportResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, request.Ticker)
	f.mu.Unlock()

	if f.panics[request.Ticker] {
		panic("provider exploded")
	}
	if f.fail[request.Ticker] {
		return nil, errors.New("quota exceeded")
	}
	return &dto.StockReportResult{
		Ticker:                  request.Ticker,
		CompanyOverview:         "overview " + request.Ticker,
		FinancialHealthAnalysis: "health",
		InvestmentOutlook:       "outlook",
	}, nil
}

type fakeHistoryRepository struct {
	saved []entity.AnalysisHistory
	err   error
}

func (f *fakeHistoryRepository) CreateBatch(_ context.Context, histories []entity.AnalysisHistory) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, histories...)
	return nil
}

func (f *fakeHistoryRepository) GetByRunID(context.Context, string) ([]entity.AnalysisHistory, error) {
	return f.saved, nil
}

func (f *fakeHistoryRepository) GetLatestByTicker(_ context.Context, ticker string, _ int) ([]entity.AnalysisHistory, error) {
	var out []entity.AnalysisHistory
	for _, h := range f.saved {
		if h.Ticker == ticker {
			out = append(out, h)
		}
	}
	return out, nil
}

var fixedNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, ai repository.AIRepository, history repository.AnalysisHistoryRepository) *analyzerService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Analyzer.Seed = 42
	cfg.Analyzer.Timezone = "UTC"
	cfg.ApplyDefaults()

	svc := NewAnalyzerService(cfg, logger.NewNop(), ai, repository.NewMemoryAnalysisStore(time.Hour), history).(*analyzerService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestParseTickers(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "MSFT", "AAPL"}, ParseTickers("aapl, msft, aapl", 10))
	assert.Equal(t, []string{"PETR4"}, ParseTickers(" ,petr4,, ", 10))
	assert.Empty(t, ParseTickers("", 10))
	assert.Empty(t, ParseTickers(" , ", 10))
	assert.Equal(t, []string{"A", "B"}, ParseTickers("a,b,c,d", 2))
}

func TestAnalyzeValidation(t *testing.T) {
	svc := newTestService(t, &fakeAIRepository{}, nil)

	tests := []struct {
		name    string
		request dto.AnalyzeRequest
		err     error
	}{
		{"no tickers", dto.AnalyzeRequest{Tickers: " , ", StartDate: "2025-01-01"}, ErrNoTickers},
		{"missing start", dto.AnalyzeRequest{Tickers: "AAPL"}, ErrMissingStartDate},
		{"invalid start", dto.AnalyzeRequest{Tickers: "AAPL", StartDate: "01/02/2025"}, ErrInvalidStartDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := svc.Analyze(context.Background(), tt.request)
			assert.Nil(t, run)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAnalyzeRun(t *testing.T) {
	ai := &fakeAIRepository{}
	history := &fakeHistoryRepository{}
	svc := newTestService(t, ai, history)

	run, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Tickers: "aapl, petr4", StartDate: "2024-12-01"})
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, []string{"AAPL", "PETR4"}, run.Tickers)
	require.Len(t, run.Analyses, 2)

	days := 100 // 2024-12-01 .. 2025-03-10
	for _, a := range run.Analyses {
		assert.Len(t, a.PricePoints, days)
		assert.Len(t, a.ChartData, days)
		assert.Equal(t, "overview "+a.Ticker, a.Report.CompanyOverview)
		assert.False(t, a.Report.Placeholder)
		require.Len(t, a.Technical.SMAs, 2)
		assert.NotNil(t, a.Technical.SMA(20))
		assert.NotNil(t, a.Technical.SMA(50))
		assert.NotNil(t, a.Technical.Bollinger.Values.Upper)
		assert.Equal(t, 14, a.Technical.RSI.Period)
		assert.Nil(t, a.ChartData[18].SMA20)
		assert.NotNil(t, a.ChartData[19].SMA20)
	}
	assert.Equal(t, "US", run.Analyses[0].Market)
	assert.Equal(t, "BR", run.Analyses[1].Market)
	assert.Equal(t, "Apple Inc.", run.Analyses[0].CompanyName)

	require.Len(t, run.NormalizedTable.Rows, days)
	for col := range run.NormalizedTable.Tickers {
		assert.Equal(t, 100.0, run.NormalizedTable.Rows[0].Values[col])
	}

	stored, err := svc.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Same(t, run, stored)

	require.Len(t, history.saved, 2)
	assert.Equal(t, run.ID, history.saved[0].RunID)
	assert.Equal(t, run.Analyses[0].PricePoints.Last(), history.saved[0].LastPrice)
	assert.NotEmpty(t, history.saved[0].Data)
}

func TestAnalyzeStartToday(t *testing.T) {
	svc := newTestService(t, &fakeAIRepository{}, nil)

	run, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Tickers: "MSFT", StartDate: "2025-03-10"})
	require.NoError(t, err)
	require.Len(t, run.Analyses, 1)
	assert.Len(t, run.Analyses[0].PricePoints, 1)
	assert.Nil(t, run.Analyses[0].Technical.SMA(20))
	assert.Equal(t, "within_bands", run.Analyses[0].Technical.Bollinger.Interpretation.Category)
}

func TestAnalyzeAcrossDSTStartInSaoPaulo(t *testing.T) {
	svc := newTestService(t, &fakeAIRepository{}, nil)
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	svc.location = loc
	// 22:30 local on Dec 1st is already Dec 2nd in UTC.
	svc.now = func() time.Time { return time.Date(2018, 12, 1, 22, 30, 0, 0, loc) }

	run, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Tickers: "PETR4,VALE3", StartDate: "2018-10-01"})
	require.NoError(t, err)

	points := run.Analyses[0].PricePoints
	require.Len(t, points, 62)
	assert.Equal(t, "2018-12-01", points[len(points)-1].Date.Format("2006-01-02"))

	require.Len(t, run.PriceTable.Rows, 62)
	seen := make(map[string]bool)
	for _, row := range run.PriceTable.Rows {
		d := row.Date.Format("2006-01-02")
		assert.False(t, seen[d], "duplicate row %s", d)
		seen[d] = true
		assert.False(t, math.IsNaN(row.Values[0]))
		assert.False(t, math.IsNaN(row.Values[1]))
	}
	assert.True(t, seen["2018-11-04"])
}

func TestAnalyzeFutureStartIsEmpty(t *testing.T) {
	ai := &fakeAIRepository{}
	svc := newTestService(t, ai, nil)

	run, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Tickers: "MSFT", StartDate: "2025-03-11"})
	require.NoError(t, err)
	assert.Empty(t, run.Analyses)
	assert.Empty(t, run.PriceTable.Rows)
	assert.Empty(t, ai.calls)
}

func TestAnalyzeNarrativeFallbackPerTicker(t *testing.T) {
	ai := &fakeAIRepository{
		fail:   map[string]bool{"MSFT": true},
		panics: map[string]bool{"TSLA": true},
	}
	svc := newTestService(t, ai, nil)

	run, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Tickers: "AAPL,MSFT,TSLA", StartDate: "2025-03-01"})
	require.NoError(t, err)
	require.Len(t, run.Analyses, 3)

	assert.False(t, run.Find("AAPL").Report.Placeholder)

	for _, ticker := range []string{"MSFT", "TSLA"} {
		report := run.Find(ticker).Report
		assert.True(t, report.Placeholder)
		assert.Equal(t, ticker, report.Ticker)
		assert.Equal(t, "Dados do relatório de IA indisponíveis.", report.CompanyOverview)
		assert.Equal(t, report.CompanyOverview, report.FinancialHealthAnalysis)
		assert.Equal(t, report.CompanyOverview, report.InvestmentOutlook)
	}
	assert.Len(t, ai.calls, 3)
}

func TestAnalyzeDisabledProviderUsesPlaceholder(t *testing.T) {
	svc := newTestService(t, repository.NewDisabledAIRepository(), nil)

	run, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Tickers: "AAPL", StartDate: "2025-03-01"})
	require.NoError(t, err)
	assert.True(t, run.Analyses[0].Report.Placeholder)
}

func TestAnalyzeDuplicateTickersKeepColumns(t *testing.T) {
	svc := newTestService(t, &fakeAIRepository{}, nil)

	run, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Tickers: "aapl, msft, aapl", StartDate: "2025-03-01"})
	require.NoError(t, err)
	require.Len(t, run.Analyses, 3)
	assert.Equal(t, []string{"AAPL", "MSFT", "AAPL"}, run.PriceTable.Tickers)
	assert.Len(t, run.PriceTable.Rows[0].Values, 3)
}

func TestAnalyzeDeterministicWithSeed(t *testing.T) {
	req := dto.AnalyzeRequest{Tickers: "AAPL,VALE3", StartDate: "2025-01-01"}

	a, err := newTestService(t, &fakeAIRepository{}, nil).Analyze(context.Background(), req)
	require.NoError(t, err)
	b, err := newTestService(t, &fakeAIRepository{}, nil).Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.Analyses[1].PricePoints, b.Analyses[1].PricePoints)
	assert.Equal(t, a.Analyses[1].Fundamentals, b.Analyses[1].Fundamentals)
}

func TestAnalyzeHistoryFailureIsNotFatal(t *testing.T) {
	svc := newTestService(t, &fakeAIRepository{}, &fakeHistoryRepository{err: errors.New("db down")})

	run, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{Tickers: "AAPL", StartDate: "2025-03-01"})
	require.NoError(t, err)
	assert.Len(t, run.Analyses, 1)
}

func TestGetRunNotFound(t *testing.T) {
	svc := newTestService(t, &fakeAIRepository{}, nil)

	_, err := svc.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestTickerHistory(t *testing.T) {
	svc := newTestService(t, &fakeAIRepository{}, nil)
	_, err := svc.TickerHistory(context.Background(), "AAPL", 5)
	assert.ErrorIs(t, err, ErrHistoryDisabled)

	history := &fakeHistoryRepository{}
	svc = newTestService(t, &fakeAIRepository{}, history)
	_, err = svc.Analyze(context.Background(), dto.AnalyzeRequest{Tickers: "AAPL,MSFT", StartDate: "2025-03-01"})
	require.NoError(t, err)

	rows, err := svc.TickerHistory(context.Background(), " aapl ", 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AAPL", rows[0].Ticker)
}

func TestPlaceholderReportLocale(t *testing.T) {
	report := PlaceholderReport("AAPL", language.English)
	assert.Equal(t, "AI report data unavailable.", report.InvestmentOutlook)
	assert.True(t, report.Placeholder)
}

func TestMessageKey(t *testing.T) {
	assert.Equal(t, "validation.no_tickers", MessageKey(ErrNoTickers))
	assert.Equal(t, "validation.missing_start", MessageKey(ErrMissingStartDate))
	assert.Equal(t, "validation.invalid_start", MessageKey(ErrInvalidStartDate))
	assert.Equal(t, "validation.invalid_request", MessageKey(errors.New("x")))
}

func TestNormalizedTableHandlesNaN(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	analyses := []entity.StockAnalysis{
		{Ticker: "A", PricePoints: entity.Series{{Date: day(1), Price: 50}, {Date: day(2), Price: 75}}},
		{Ticker: "B", PricePoints: entity.Series{{Date: day(2), Price: 10}}},
		{Ticker: "C", PricePoints: entity.Series{{Date: day(1), Price: 0}, {Date: day(2), Price: 5}}},
	}

	prices := BuildPriceTable(analyses)
	require.Len(t, prices.Rows, 2)
	assert.Equal(t, day(1), prices.Rows[0].Date)
	assert.True(t, math.IsNaN(prices.Rows[0].Values[1]))
	assert.Equal(t, 10.0, prices.Rows[1].Values[1])

	normalized := BuildNormalizedTable(analyses)
	assert.Equal(t, 100.0, normalized.Rows[0].Values[0])
	assert.Equal(t, 150.0, normalized.Rows[1].Values[0])
	assert.True(t, math.IsNaN(normalized.Rows[0].Values[1]), "no point before the ticker's first date")
	assert.Equal(t, 100.0, normalized.Rows[1].Values[1], "a later series is rebased on its own first point")
	assert.True(t, math.IsNaN(normalized.Rows[0].Values[2]), "zero first price blanks the column")
	assert.True(t, math.IsNaN(normalized.Rows[1].Values[2]))

	assert.Empty(t, BuildNormalizedTable(nil).Rows)
}
