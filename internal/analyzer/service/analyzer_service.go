package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/repository"
	"golang-stock-analyzer/internal/analyzer/rules"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
)

// AnalyzerService runs analyses and serves stored runs.
type AnalyzerService interface {
	Analyze(ctx context.Context, request dto.AnalyzeRequest) (*entity.AnalysisRun, error)
	Validate(request dto.AnalyzeRequest) error
	GetRun(ctx context.Context, id string) (*entity.AnalysisRun, error)
	TickerHistory(ctx context.Context, ticker string, limit int) ([]entity.AnalysisHistory, error)
	Locale() language.Tag
}

type analyzerService struct {
	cfg         *config.Config
	log         *logger.Logger
	aiRepo      repository.AIRepository
	store       repository.AnalysisStore
	historyRepo repository.AnalysisHistoryRepository
	locale      language.Tag
	location    *time.Location
	now         func() time.Time
}

// NewAnalyzerService creates a new AnalyzerService. historyRepo may be nil when no database is configured.
func NewAnalyzerService(cfg *config.Config, log *logger.Logger,
	aiRepo repository.AIRepository,
	store repository.AnalysisStore,
	historyRepo repository.AnalysisHistoryRepository) AnalyzerService {
	return &analyzerService{
		cfg:         cfg,
		log:         log,
		aiRepo:      aiRepo,
		store:       store,
		historyRepo: historyRepo,
		locale:      rules.ParseLocale(cfg.Analyzer.Locale),
		location:    utils.LoadLocation(cfg.Analyzer.Timezone),
		now:         time.Now,
	}
}

// ParseTickers splits a comma separated list into upper-case tickers, keeping at most max.
// Duplicates are kept.
func ParseTickers(input string, max int) []string {
	tickers := make([]string, 0)
	for _, part := range strings.Split(input, ",") {
		t := strings.ToUpper(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		tickers = append(tickers, t)
	}
	if max > 0 && len(tickers) > max {
		tickers = tickers[:max]
	}
	return tickers
}

// PlaceholderReport is the narrative used when the provider fails.
func PlaceholderReport(ticker string, locale language.Tag) entity.NarrativeReport {
	text := rules.Message(locale, "narrative.placeholder")
	return entity.NarrativeReport{
		Ticker:                  ticker,
		CompanyOverview:         text,
		FinancialHealthAnalysis: text,
		InvestmentOutlook:       text,
		Placeholder:             true,
	}
}

func (s *analyzerService) Locale() language.Tag {
	return s.locale
}

func (s *analyzerService) validate(request dto.AnalyzeRequest) ([]string, time.Time, error) {
	tickers := ParseTickers(request.Tickers, s.cfg.Analyzer.MaxTickers)
	if len(tickers) == 0 {
		return nil, time.Time{}, ErrNoTickers
	}
	if strings.TrimSpace(request.StartDate) == "" {
		return nil, time.Time{}, ErrMissingStartDate
	}
	start, err := utils.ParseDate(strings.TrimSpace(request.StartDate))
	if err != nil {
		return nil, time.Time{}, ErrInvalidStartDate
	}
	return tickers, start, nil
}

// Validate reports the validation error Analyze would return for request, if any.
func (s *analyzerService) Validate(request dto.AnalyzeRequest) error {
	_, _, err := s.validate(request)
	return err
}

func (s *analyzerService) Analyze(ctx context.Context, request dto.AnalyzeRequest) (*entity.AnalysisRun, error) {
	tickers, start, err := s.validate(request)
	if err != nil {
		return nil, err
	}

	id := request.ID
	if id == "" {
		id = uuid.NewString()
	}
	ctx = logger.WithRunID(ctx, id)

	now := s.now()
	today := utils.TruncateToDay(now, s.location)
	run := &entity.AnalysisRun{
		ID:        id,
		Tickers:   tickers,
		StartDate: start,
		CreatedAt: now,
		Analyses:  []entity.StockAnalysis{},
	}

	if start.After(today) {
		s.log.InfoContext(ctx, "Start date is in the future, nothing to analyze",
			logger.StringField("start_date", request.StartDate))
	} else {
		s.log.DebugContext(ctx, "Generating series",
			logger.IntField("days", utils.DaysBetweenInclusive(start, today)),
			logger.IntField("tickers", len(tickers)))
		rng := utils.NewRand(s.cfg.Analyzer.Seed)
		for _, ticker := range tickers {
			analysis := s.analyzeTicker(rng, ticker, start, today)
			s.log.DebugContext(ctx, "Ticker analyzed",
				logger.StringField("ticker", ticker),
				logger.Float64Field("last_price", analysis.PricePoints.Last()))
			run.Analyses = append(run.Analyses, analysis)
		}
		s.attachReports(ctx, run.Analyses)
	}

	run.PriceTable = BuildPriceTable(run.Analyses)
	run.NormalizedTable = BuildNormalizedTable(run.Analyses)

	if err := s.store.Save(ctx, run); err != nil {
		s.log.ErrorContext(ctx, "Failed to store analysis run", logger.ErrorField(err))
		return nil, err
	}

	s.saveHistory(ctx, run)

	s.log.InfoContext(ctx, "Analysis run completed",
		logger.IntField("tickers", len(run.Tickers)),
		logger.IntField("analyses", len(run.Analyses)),
	)
	return run, nil
}

// attachReports fetches every narrative concurrently. A failing ticker gets the placeholder;
// no failure aborts the run.
func (s *analyzerService) attachReports(ctx context.Context, analyses []entity.StockAnalysis) {
	var g errgroup.Group
	if limit := s.cfg.Analyzer.MaxConcurrentReports; limit > 0 {
		g.SetLimit(limit)
	}

	for i := range analyses {
		a := &analyses[i]
		g.Go(func() error {
			a.Report = s.generateReport(ctx, a)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *analyzerService) generateReport(ctx context.Context, a *entity.StockAnalysis) (report entity.NarrativeReport) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "Recovered from panic while generating report",
				logger.StringField("ticker", a.Ticker), logger.Field("panic", r))
			report = PlaceholderReport(a.Ticker, s.locale)
		}
	}()

	result, err := s.aiRepo.GenerateStockReport(ctx, &dto.StockReportRequest{
		Ticker:       a.Ticker,
		CompanyName:  a.CompanyName,
		Fundamentals: a.Fundamentals,
		Technical:    a.Technical,
		Locale:       s.locale,
	})
	if err != nil {
		s.log.WarnContext(ctx, "Failed to generate stock report, using placeholder",
			logger.StringField("ticker", a.Ticker), logger.ErrorField(err))
		return PlaceholderReport(a.Ticker, s.locale)
	}

	return entity.NarrativeReport{
		Ticker:                  a.Ticker,
		CompanyOverview:         result.CompanyOverview,
		FinancialHealthAnalysis: result.FinancialHealthAnalysis,
		InvestmentOutlook:       result.InvestmentOutlook,
	}
}

func (s *analyzerService) saveHistory(ctx context.Context, run *entity.AnalysisRun) {
	if s.historyRepo == nil || len(run.Analyses) == 0 {
		return
	}

	histories := make([]entity.AnalysisHistory, 0, len(run.Analyses))
	for _, a := range run.Analyses {
		data, err := json.Marshal(struct {
			Technical    entity.TechnicalSnapshot    `json:"technical_indicators"`
			Fundamentals entity.FundamentalsSnapshot `json:"fundamental_metrics"`
			Report       entity.NarrativeReport      `json:"report"`
		}{a.Technical, a.Fundamentals, a.Report})
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to marshal analysis history", logger.ErrorField(err), logger.StringField("ticker", a.Ticker))
			continue
		}

		histories = append(histories, entity.AnalysisHistory{
			RunID:                run.ID,
			Ticker:               a.Ticker,
			Market:               a.Market,
			CompanyName:          a.CompanyName,
			StartDate:            run.StartDate,
			LastPrice:            a.PricePoints.Last(),
			RSI:                  a.Technical.RSI.Value,
			MACDHistogram:        a.Technical.MACD.Values.Histogram,
			RSISignal:            a.Technical.RSI.Interpretation.Category,
			MACDSignal:           a.Technical.MACD.Interpretation.Category,
			BollingerSignal:      a.Technical.Bollinger.Interpretation.Category,
			PlaceholderNarrative: a.Report.Placeholder,
			Data:                 datatypes.JSON(data),
		})
	}

	if err := s.historyRepo.CreateBatch(ctx, histories); err != nil {
		s.log.ErrorContext(ctx, "Failed to save analysis history", logger.ErrorField(err))
	}
}

func (s *analyzerService) GetRun(ctx context.Context, id string) (*entity.AnalysisRun, error) {
	return s.store.Get(ctx, id)
}

// TickerHistory lists the latest stored analyses of ticker, newest first.
func (s *analyzerService) TickerHistory(ctx context.Context, ticker string, limit int) ([]entity.AnalysisHistory, error) {
	if s.historyRepo == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = 20
	}
	return s.historyRepo.GetLatestByTicker(ctx, strings.ToUpper(strings.TrimSpace(ticker)), limit)
}
