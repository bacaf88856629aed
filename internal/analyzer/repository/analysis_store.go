package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/common"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

type memoryAnalysisStore struct {
	cache *cache.Cache
}

// NewMemoryAnalysisStore keeps runs in process memory for ttl.
func NewMemoryAnalysisStore(ttl time.Duration) AnalysisStore {
	return &memoryAnalysisStore{cache: cache.New(ttl, 2*ttl)}
}

func (s *memoryAnalysisStore) Save(_ context.Context, run *entity.AnalysisRun) error {
	s.cache.Set(run.ID, run, cache.DefaultExpiration)
	return nil
}

func (s *memoryAnalysisStore) Get(_ context.Context, id string) (*entity.AnalysisRun, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrRunNotFound
	}
	return v.(*entity.AnalysisRun), nil
}

type redisAnalysisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewRedisAnalysisStore keeps runs as JSON under analysis_run:<id> for ttl.
func NewRedisAnalysisStore(redisClient *redis.Client, ttl time.Duration) AnalysisStore {
	return &redisAnalysisStore{redisClient: redisClient, ttl: ttl}
}

func (s *redisAnalysisStore) Save(ctx context.Context, run *entity.AnalysisRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis run: %w", err)
	}
	key := fmt.Sprintf(common.RedisKeyAnalysisRun, run.ID)
	if err := s.redisClient.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store analysis run: %w", err)
	}
	return nil
}

func (s *redisAnalysisStore) Get(ctx context.Context, id string) (*entity.AnalysisRun, error) {
	key := fmt.Sprintf(common.RedisKeyAnalysisRun, id)
	data, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	var run entity.AnalysisRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis run: %w", err)
	}
	return &run, nil
}
