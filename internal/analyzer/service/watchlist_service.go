package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/telegram"
	"golang-stock-analyzer/pkg/utils"

	"github.com/robfig/cron/v3"
)

// WatchlistService analyzes the configured watchlist on a cron schedule.
type WatchlistService interface {
	Start(ctx context.Context)
	RunOnce(ctx context.Context) (*entity.AnalysisRun, error)
}

type watchlistService struct {
	cfg             *config.Config
	log             *logger.Logger
	analyzerService AnalyzerService
	telegramBot     telegram.Notifier
	schedule        cron.Schedule
	location        *time.Location
	now             func() time.Time
}

// NewWatchlistService validates the cron expression and creates a WatchlistService.
func NewWatchlistService(cfg *config.Config, log *logger.Logger, analyzerService AnalyzerService, telegramBot telegram.Notifier) (WatchlistService, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cfg.Watchlist.Cron)
	if err != nil {
		return nil, fmt.Errorf("invalid watchlist cron %q: %w", cfg.Watchlist.Cron, err)
	}
	if len(cfg.Watchlist.Tickers) == 0 {
		return nil, fmt.Errorf("watchlist has no tickers")
	}

	return &watchlistService{
		cfg:             cfg,
		log:             log,
		analyzerService: analyzerService,
		telegramBot:     telegramBot,
		schedule:        schedule,
		location:        utils.LoadLocation(cfg.Analyzer.Timezone),
		now:             time.Now,
	}, nil
}

// Start blocks until ctx is done, running the watchlist on every cron tick.
func (s *watchlistService) Start(ctx context.Context) {
	c := cron.New(cron.WithLocation(s.location), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(s.schedule, cron.FuncJob(func() {
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error("Watchlist analysis failed", logger.ErrorField(err))
		}
	}))

	s.log.Info("Watchlist scheduler started",
		logger.StringField("cron", s.cfg.Watchlist.Cron),
		logger.Field("next_run", s.schedule.Next(s.now().In(s.location))))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	s.log.Info("Watchlist scheduler stopping")
}

// RunOnce analyzes the watchlist from LookbackDays ago until today.
func (s *watchlistService) RunOnce(ctx context.Context) (*entity.AnalysisRun, error) {
	today := utils.TruncateToDay(s.now(), s.location)
	start := utils.AddDays(today, -s.cfg.Watchlist.LookbackDays)

	run, err := s.analyzerService.Analyze(ctx, dto.AnalyzeRequest{
		Tickers:   strings.Join(s.cfg.Watchlist.Tickers, ","),
		StartDate: start.Format(common.DateLayout),
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Watchlist analysis completed", logger.StringField("run_id", run.ID), logger.IntField("tickers", len(run.Analyses)))

	if s.cfg.Watchlist.Notify {
		if err := s.telegramBot.SendMessages(telegram.FormatAnalysisSummary(run, s.analyzerService.Locale())); err != nil {
			s.log.Error("Failed to send watchlist summary", logger.ErrorField(err), logger.StringField("run_id", run.ID))
		}
	}
	return run, nil
}
