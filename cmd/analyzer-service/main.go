package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/delivery/consumer"
	delivery "golang-stock-analyzer/internal/analyzer/delivery/http"
	_ "golang-stock-analyzer/internal/analyzer/docs"
	"golang-stock-analyzer/internal/analyzer/repository"
	"golang-stock-analyzer/internal/analyzer/service"
	"golang-stock-analyzer/pkg/chart"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/postgres"
	"golang-stock-analyzer/pkg/redis"
	"golang-stock-analyzer/pkg/telegram"
	"golang-stock-analyzer/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analyzer service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Analyzer Service", logger.Field("name", cfg.App.Name))

	var historyRepo repository.AnalysisHistoryRepository
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			TimeZone:        cfg.Database.TimeZone,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			defer sqlDB.Close()
		}
		historyRepo = repository.NewAnalysisHistoryRepository(db.DB)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
	}

	var store repository.AnalysisStore
	switch cfg.Analyzer.ResultStore {
	case "redis":
		if redisClient == nil {
			appLogger.Fatal("Result store redis requires redis.enabled")
		}
		store = repository.NewRedisAnalysisStore(redisClient.Client, cfg.Analyzer.ResultTTL)
	case "memory":
		store = repository.NewMemoryAnalysisStore(cfg.Analyzer.ResultTTL)
	default:
		appLogger.Fatal("Invalid result store specified in config", logger.StringField("result_store", cfg.Analyzer.ResultStore))
	}

	aiRepo, err := repository.NewAIRepository(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AI repository", logger.ErrorField(err))
	}

	telegramNotifier := telegram.NewNopNotifier()
	if cfg.Telegram.Enabled {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	analyzerSvc := service.NewAnalyzerService(cfg, appLogger, aiRepo, store, historyRepo)

	var queue repository.AnalysisQueue
	var redisConsumer *consumer.RedisConsumer
	if redisClient != nil {
		queue = repository.NewRedisAnalysisQueue(redisClient.Client, cfg.Redis.StreamMaxLen)
		if cfg.Consumer.Enabled {
			if err := redisClient.EnsureGroup(ctx, common.RedisStreamAnalysisRequest, common.RedisStreamGroup); err != nil {
				appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
			}
			taskSvc := service.NewAnalysisTaskService(cfg, appLogger, redisClient.Client, analyzerSvc, telegramNotifier)
			redisConsumer = consumer.NewRedisConsumer(cfg, taskSvc, appLogger)
			redisConsumer.Start(ctx)
		}
	}

	if cfg.Watchlist.Enabled {
		watchlistSvc, err := service.NewWatchlistService(cfg, appLogger, analyzerSvc, telegramNotifier)
		if err != nil {
			appLogger.Fatal("Failed to initialize watchlist", logger.ErrorField(err))
		}
		utils.GoSafe(func() { watchlistSvc.Start(ctx) })
	}

	e := echo.New()
	e.HideBanner = true

	analysisHandler := delivery.NewAnalysisHandler(analyzerSvc, queue, chart.Options{Width: cfg.Chart.Width, Height: cfg.Chart.Height}, appLogger)
	apiV1 := e.Group("/api/v1")
	analysisHandler.RegisterRoutes(apiV1.Group("/analyses"))
	analysisHandler.RegisterHistoryRoutes(apiV1.Group("/history"))

	e.GET("/healthz", delivery.HealthCheck)
	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	if redisConsumer != nil {
		redisConsumer.Stop()
	}

	appLogger.Info("Server exiting")
}

// @title Stock Analyzer API
// @version 1.0
// @description Synthetic stock analysis: price series, indicators, fundamentals and AI narratives.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "analyzer-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-analyzer.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, newAnalyzeCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analyzer-service CLI: %s\n", err)
		os.Exit(1)
	}
}
