package dto

import (
	"golang-stock-analyzer/internal/entity"

	"golang.org/x/text/language"
)

// AnalyzeRequest is the input of one analysis run.
type AnalyzeRequest struct {
	// ID is optional; a new id is generated when empty.
	ID        string `json:"id,omitempty"`
	Tickers   string `json:"tickers" example:"AAPL, PETR4, MSFT"`
	StartDate string `json:"start_date" example:"2025-01-02"`
}

// AnalysisRequestMessage is the payload published on the analysis request stream.
type AnalysisRequestMessage struct {
	ID         string `json:"id"`
	Tickers    string `json:"tickers"`
	StartDate  string `json:"start_date"`
	NotifyUser bool   `json:"notify_user"`
}

// AsyncAnalysisResponse is returned when a run is queued.
type AsyncAnalysisResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the error body of the HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StockReportRequest carries what the narrative provider needs for one ticker.
type StockReportRequest struct {
	Ticker       string
	CompanyName  string
	Fundamentals entity.FundamentalsSnapshot
	Technical    entity.TechnicalSnapshot
	Locale       language.Tag
}

// StockReportResult is the JSON object expected from the narrative provider.
type StockReportResult struct {
	Ticker                  string `json:"ticker"`
	CompanyOverview         string `json:"companyOverview"`
	FinancialHealthAnalysis string `json:"financialHealthAnalysis"`
	InvestmentOutlook       string `json:"investmentOutlook"`
}
