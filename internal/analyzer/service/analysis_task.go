package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/telegram"
	"golang-stock-analyzer/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// AnalysisTaskService consumes queued analysis requests from the Redis stream.
type AnalysisTaskService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
}

type analysisTaskService struct {
	cfg             *config.Config
	log             *logger.Logger
	redisClient     *redis.Client
	analyzerService AnalyzerService
	telegramBot     telegram.Notifier
	location        *time.Location
}

func NewAnalysisTaskService(cfg *config.Config, log *logger.Logger,
	redisClient *redis.Client,
	analyzerService AnalyzerService,
	telegramBot telegram.Notifier) AnalysisTaskService {
	return &analysisTaskService{
		cfg:             cfg,
		log:             log,
		redisClient:     redisClient,
		analyzerService: analyzerService,
		telegramBot:     telegramBot,
		location:        utils.LoadLocation(cfg.Analyzer.Timezone),
	}
}

func (s *analysisTaskService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamAnalysisRequest, ">"},
		Count:    1,
		Block:    2 * time.Second,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		s.log.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]
	request, err := decodeAnalysisMessage(message)
	if err != nil {
		// A payload that cannot be decoded will never succeed, so it is dropped right away.
		s.log.Error("Dropping malformed analysis request", logger.ErrorField(err), logger.StringField("message_id", message.ID))
		_ = s.ackAndDel(ctx, message.ID)
		return
	}

	s.log.Debug("Processing analysis request", logger.StringField("run_id", request.ID), logger.StringField("tickers", request.Tickers))

	if err := s.execute(ctx, request); err != nil {
		if errors.Is(err, ErrValidation) {
			s.log.Warn("Dropping invalid analysis request", logger.ErrorField(err), logger.StringField("message_id", message.ID))
			_ = s.ackAndDel(ctx, message.ID)
			return
		}
		s.log.Error("Failed to process analysis request", logger.ErrorField(err), logger.StringField("message_id", message.ID), logger.StringField("run_id", request.ID))
		return
	}

	if err := s.ackAndDel(ctx, message.ID); err != nil {
		return
	}
	s.log.Debug("Analysis request processed successfully", logger.StringField("run_id", request.ID))
}

func (s *analysisTaskService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamAnalysisRequest,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Consumer.MaxIdleDuration,
		Start:    "0",
		Count:    1,
	}).Result()
	if err != nil {
		s.log.Error("Failed to claim analysis request on retry", logger.ErrorField(err))
		return
	}

	if len(msgs) == 0 {
		s.log.Debug("Retry no pending messages found", logger.StringField("stream", common.RedisStreamAnalysisRequest))
		return
	}

	msg := msgs[0]
	pendingInfo, err := s.redisClient.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: common.RedisStreamAnalysisRequest,
		Group:  common.RedisStreamGroup,
		Start:  msg.ID,
		End:    msg.ID,
		Count:  1,
	}).Result()
	if err != nil {
		s.log.Error("Failed to get pending info", logger.ErrorField(err))
		return
	}
	if len(pendingInfo) == 0 {
		s.log.Warn("pending msg not found, but exist on xautoclaim",
			logger.StringField("stream", common.RedisStreamAnalysisRequest),
			logger.StringField("message_id", msg.ID))
		return
	}

	request, err := decodeAnalysisMessage(msg)
	if err != nil {
		s.log.Error("Dropping malformed analysis request", logger.ErrorField(err), logger.StringField("message_id", msg.ID))
		_ = s.ackAndDel(ctx, msg.ID)
		return
	}

	if pendingInfo[0].RetryCount >= int64(s.cfg.Consumer.MaxRetry) {
		s.log.Error("pending msg retry count exceeded",
			logger.StringField("stream", common.RedisStreamAnalysisRequest),
			logger.StringField("message_id", msg.ID),
			logger.StringField("run_id", request.ID),
			logger.IntField("retry_count", int(pendingInfo[0].RetryCount)),
			logger.IntField("max_retry", s.cfg.Consumer.MaxRetry),
		)
		alert := telegram.FormatErrorAlertMessage(time.Now().In(s.location), "Analysis Retry Exceeded",
			fmt.Sprintf("Analysis request %s exceeded %d retries", request.ID, s.cfg.Consumer.MaxRetry),
			fmt.Sprintf("tickers=%s start_date=%s", request.Tickers, request.StartDate))
		if err := s.telegramBot.SendMessage(alert); err != nil {
			s.log.Error("Failed to send telegram message retry exceeded", logger.ErrorField(err), logger.StringField("run_id", request.ID))
		}
		_ = s.ackAndDel(ctx, msg.ID)
		return
	}

	if err := s.execute(ctx, request); err != nil {
		if errors.Is(err, ErrValidation) {
			_ = s.ackAndDel(ctx, msg.ID)
			return
		}
		s.log.Error("Failed to process analysis request on retry", logger.ErrorField(err), logger.StringField("message_id", msg.ID), logger.StringField("run_id", request.ID))
		return
	}

	if err := s.ackAndDel(ctx, msg.ID); err != nil {
		return
	}
	s.log.Info("Retry analysis request processed successfully", logger.StringField("run_id", request.ID))
}

func (s *analysisTaskService) execute(ctx context.Context, request dto.AnalysisRequestMessage) error {
	run, err := s.analyzerService.Analyze(ctx, dto.AnalyzeRequest{
		ID:        request.ID,
		Tickers:   request.Tickers,
		StartDate: request.StartDate,
	})
	if err != nil {
		return err
	}

	if !request.NotifyUser {
		return nil
	}
	// The run is already stored; a failed notification must not trigger a re-run.
	if err := s.telegramBot.SendMessages(telegram.FormatAnalysisSummary(run, s.analyzerService.Locale())); err != nil {
		s.log.Error("Failed to send analysis summary", logger.ErrorField(err), logger.StringField("run_id", run.ID))
	}
	return nil
}

func (s *analysisTaskService) ackAndDel(ctx context.Context, messageID string) error {
	if err := s.redisClient.XAck(ctx, common.RedisStreamAnalysisRequest, common.RedisStreamGroup, messageID).Err(); err != nil {
		s.log.Error("Failed to acknowledge analysis request", logger.ErrorField(err), logger.StringField("message_id", messageID))
		return err
	}
	if err := s.redisClient.XDel(ctx, common.RedisStreamAnalysisRequest, messageID).Err(); err != nil {
		s.log.Error("Failed to delete analysis request", logger.ErrorField(err), logger.StringField("message_id", messageID))
		return err
	}
	return nil
}

func decodeAnalysisMessage(message redis.XMessage) (dto.AnalysisRequestMessage, error) {
	var request dto.AnalysisRequestMessage
	payload, ok := message.Values["payload"].(string)
	if !ok {
		return request, errors.New("field 'payload' not found or not a string in stream message")
	}
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		return request, fmt.Errorf("failed to unmarshal analysis request: %w", err)
	}
	return request, nil
}
