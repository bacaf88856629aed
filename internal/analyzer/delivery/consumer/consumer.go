package consumer

import (
	"context"
	"sync"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/service"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/utils"
)

// RedisConsumer runs the analysis request stream loops.
type RedisConsumer struct {
	cfg                 *config.Config
	analysisTaskService service.AnalysisTaskService
	logger              *logger.Logger
	stopChan            chan struct{}
	stopOnce            sync.Once
	wg                  sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(cfg *config.Config, analysisTaskService service.AnalysisTaskService, log *logger.Logger) *RedisConsumer {
	return &RedisConsumer{
		cfg:                 cfg,
		analysisTaskService: analysisTaskService,
		logger:              log,
		stopChan:            make(chan struct{}),
	}
}

// Start begins the read loop and the retry loop.
func (c *RedisConsumer) Start(ctx context.Context) {
	c.logger.Info("Redis consumer started")
	c.RegisterStreamHandler(ctx, c.analysisTaskService.ProcessTask, common.RedisStreamAnalysisRequest, c.cfg.Consumer.Timeout)

	//handle retry
	c.RegisterTickerHandler(ctx, c.analysisTaskService.ProcessRetries, c.cfg.Consumer.RetryInterval, c.cfg.Consumer.Timeout, common.RedisStreamAnalysisRequest+"-retry")
}

func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.StringField("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval time.Duration, timeout time.Duration, name string) {
	c.logger.Info("Registering ticker handler",
		logger.StringField("name", name),
		logger.DurationField("interval", interval),
		logger.DurationField("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.StringField("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.StringField("name", name))
				return
			}
		}
	})
}

// Stop signals the loops and waits for the running iteration to finish.
func (c *RedisConsumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
