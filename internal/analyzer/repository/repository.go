package repository

import (
	"context"
	"errors"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/entity"
)

var (
	ErrMissingAPIKey    = errors.New("gemini api key is not configured")
	ErrProviderDisabled = errors.New("narrative provider is disabled")
	ErrInvalidReport    = errors.New("invalid report structure")
	ErrRunNotFound      = errors.New("analysis run not found")
)

// AIRepository produces the narrative report of one ticker.
type AIRepository interface {
	GenerateStockReport(ctx context.Context, request *dto.StockReportRequest) (*dto.StockReportResult, error)
}

// AnalysisStore keeps finished runs for later retrieval.
type AnalysisStore interface {
	Save(ctx context.Context, run *entity.AnalysisRun) error
	Get(ctx context.Context, id string) (*entity.AnalysisRun, error)
}
