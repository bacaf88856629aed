package entity

import "time"

// ChartPoint is one day of the per-ticker chart: price plus its overlays.
type ChartPoint struct {
	Date     time.Time `json:"date"`
	Price    *float64  `json:"price"`
	SMA20    *float64  `json:"sma20"`
	SMA50    *float64  `json:"sma50"`
	BBMiddle *float64  `json:"bb_middle"`
	BBUpper  *float64  `json:"bb_upper"`
	BBLower  *float64  `json:"bb_lower"`
}

// NarrativeReport is the free-text commentary for one ticker.
type NarrativeReport struct {
	Ticker                  string `json:"ticker"`
	CompanyOverview         string `json:"company_overview"`
	FinancialHealthAnalysis string `json:"financial_health_analysis"`
	InvestmentOutlook       string `json:"investment_outlook"`
	Placeholder             bool   `json:"placeholder"`
}

// StockAnalysis is the full result for one ticker of a run.
type StockAnalysis struct {
	Ticker       string               `json:"ticker"`
	Market       string               `json:"market"`
	CompanyName  string               `json:"company_name"`
	PricePoints  Series               `json:"price_points"`
	ChartData    []ChartPoint         `json:"chart_data"`
	Technical    TechnicalSnapshot    `json:"technical_indicators"`
	Fundamentals FundamentalsSnapshot `json:"fundamental_metrics"`
	Report       NarrativeReport      `json:"report"`
}

// AnalysisRun is the immutable result of one analyze request.
type AnalysisRun struct {
	ID              string          `json:"id"`
	Tickers         []string        `json:"tickers"`
	StartDate       time.Time       `json:"start_date"`
	CreatedAt       time.Time       `json:"created_at"`
	Analyses        []StockAnalysis `json:"analyses"`
	PriceTable      ChartTable      `json:"price_table"`
	NormalizedTable ChartTable      `json:"normalized_table"`
}

// Find returns the analysis for ticker, nil when absent.
func (r *AnalysisRun) Find(ticker string) *StockAnalysis {
	for i := range r.Analyses {
		if r.Analyses[i].Ticker == ticker {
			return &r.Analyses[i]
		}
	}
	return nil
}
