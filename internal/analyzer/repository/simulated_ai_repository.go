package repository

import (
	"context"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/rules"

	"golang.org/x/text/language"
)

// simulatedAIRepository writes template reports from the metrics, without any remote call.
type simulatedAIRepository struct{}

// NewSimulatedAIRepository creates an AIRepository that never leaves the process.
func NewSimulatedAIRepository() AIRepository {
	return simulatedAIRepository{}
}

func (simulatedAIRepository) GenerateStockReport(_ context.Context, request *dto.StockReportRequest) (*dto.StockReportResult, error) {
	p := rules.Printer(request.Locale)
	pe := formatValue(p, request.Fundamentals.PERatio.Value)
	roe := formatValue(p, request.Fundamentals.ROE.Value)

	if request.Locale == language.English {
		return &dto.StockReportResult{
			Ticker:                  request.Ticker,
			CompanyOverview:         p.Sprintf("Simulated overview for %s (%s): a leading company in its sector focused on innovation. (API key not configured).", request.CompanyName, request.Ticker),
			FinancialHealthAnalysis: p.Sprintf("Simulated financial health analysis for %s: mixed fundamentals, with a P/E of %s and ROE of %s%%. (API key not configured).", request.Ticker, pe, roe),
			InvestmentOutlook:       p.Sprintf("Simulated investment outlook for %s: long-term growth potential, with market risks to consider. (API key not configured).", request.Ticker),
		}, nil
	}

	return &dto.StockReportResult{
		Ticker:                  request.Ticker,
		CompanyOverview:         p.Sprintf("Visão geral simulada para %s (%s): Empresa líder em seu setor com foco em inovação. (API Key não configurada).", request.CompanyName, request.Ticker),
		FinancialHealthAnalysis: p.Sprintf("Análise de saúde financeira simulada para %s: Apresenta indicadores fundamentalistas mistos, com P/L de %s e ROE de %s%%. (API Key não configurada).", request.Ticker, pe, roe),
		InvestmentOutlook:       p.Sprintf("Perspectiva de investimento simulada para %s: Potencial de crescimento a longo prazo, mas com riscos de mercado a serem considerados. (API Key não configurada).", request.Ticker),
	}, nil
}

type disabledAIRepository struct{}

// NewDisabledAIRepository creates an AIRepository whose calls always fail with ErrProviderDisabled.
func NewDisabledAIRepository() AIRepository {
	return disabledAIRepository{}
}

func (disabledAIRepository) GenerateStockReport(context.Context, *dto.StockReportRequest) (*dto.StockReportResult, error) {
	return nil, ErrProviderDisabled
}
