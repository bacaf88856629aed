package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/pkg/common"

	"github.com/redis/go-redis/v9"
)

// AnalysisQueue publishes analysis requests for the stream consumer.
type AnalysisQueue interface {
	Enqueue(ctx context.Context, message dto.AnalysisRequestMessage) error
}

type redisAnalysisQueue struct {
	redisClient *redis.Client
	maxLen      int64
}

// NewRedisAnalysisQueue creates an AnalysisQueue on the analysis request stream.
// maxLen caps the stream approximately; zero leaves it unbounded.
func NewRedisAnalysisQueue(redisClient *redis.Client, maxLen int64) AnalysisQueue {
	return &redisAnalysisQueue{redisClient: redisClient, maxLen: maxLen}
}

func (q *redisAnalysisQueue) Enqueue(ctx context.Context, message dto.AnalysisRequestMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: common.RedisStreamAnalysisRequest,
		Values: map[string]interface{}{"payload": string(payload)},
	}
	if q.maxLen > 0 {
		args.MaxLen = q.maxLen
		args.Approx = true
	}

	if err := q.redisClient.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to publish analysis request: %w", err)
	}
	return nil
}
