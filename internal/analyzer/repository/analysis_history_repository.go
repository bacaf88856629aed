package repository

import (
	"context"

	"golang-stock-analyzer/internal/entity"

	"gorm.io/gorm"
)

// AnalysisHistoryRepository defines the interface for interacting with analysis history data.
type AnalysisHistoryRepository interface {
	CreateBatch(ctx context.Context, histories []entity.AnalysisHistory) error
	GetByRunID(ctx context.Context, runID string) ([]entity.AnalysisHistory, error)
	GetLatestByTicker(ctx context.Context, ticker string, limit int) ([]entity.AnalysisHistory, error)
}

// NewAnalysisHistoryRepository creates a new instance of AnalysisHistoryRepository.
func NewAnalysisHistoryRepository(db *gorm.DB) AnalysisHistoryRepository {
	return &analysisHistoryRepository{
		db: db,
	}
}

type analysisHistoryRepository struct {
	db *gorm.DB
}

// CreateBatch saves all rows of a run in one statement.
func (r *analysisHistoryRepository) CreateBatch(ctx context.Context, histories []entity.AnalysisHistory) error {
	if len(histories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(histories, 100).Error
}

func (r *analysisHistoryRepository) GetByRunID(ctx context.Context, runID string) ([]entity.AnalysisHistory, error) {
	var histories []entity.AnalysisHistory
	err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id asc").Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *analysisHistoryRepository) GetLatestByTicker(ctx context.Context, ticker string, limit int) ([]entity.AnalysisHistory, error) {
	var histories []entity.AnalysisHistory
	err := r.db.WithContext(ctx).Where("ticker = ?", ticker).Order("created_at desc").Limit(limit).Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}
