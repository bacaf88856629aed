package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalysisHistory records one analyzed ticker of a run.
type AnalysisHistory struct {
	ID                   int64          `json:"id"`
	RunID                string         `json:"run_id"`
	Ticker               string         `json:"ticker"`
	Market               string         `json:"market"`
	CompanyName          string         `json:"company_name"`
	StartDate            time.Time      `json:"start_date"`
	LastPrice            float64        `json:"last_price"`
	RSI                  *float64       `json:"rsi"`
	MACDHistogram        *float64       `json:"macd_histogram"`
	RSISignal            string         `json:"rsi_signal"`
	MACDSignal           string         `json:"macd_signal"`
	BollingerSignal      string         `json:"bollinger_signal"`
	PlaceholderNarrative bool           `json:"placeholder_narrative"`
	Data                 datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"deleted_at"`
}

func (AnalysisHistory) TableName() string {
	return "analysis_histories"
}
