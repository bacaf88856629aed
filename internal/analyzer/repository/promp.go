package repository

import (
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/rules"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func formatValue(p *message.Printer, v *float64) string {
	if v == nil {
		return "N/A"
	}
	return p.Sprintf("%.2f", *v)
}

// BuildStockReportPrompt builds the narrative prompt for one ticker in the request locale.
func BuildStockReportPrompt(request *dto.StockReportRequest) string {
	p := rules.Printer(request.Locale)
	f := request.Fundamentals
	t := request.Technical

	if request.Locale == language.English {
		return p.Sprintf(`For the stock with ticker %s (%s), based on the following (simulated) financial and technical data:
Fundamental Data:
    Company Name: %s,
    P/E: %s,
    ROE: %s%%,
    Debt/Equity: %s,
    Dividend Yield: %s%%
Technical Data:
    RSI(14): %s (%s),
    MACD Histogram: %s (%s),
    SMA(20): %s,
    SMA(50): %s

Please write a concise analysis for an individual investor in ENGLISH.
The analysis must include:
1.  "companyOverview": A brief overview of the company and its main sector (1-2 sentences).
2.  "financialHealthAnalysis": An analysis of the company's financial health based on the data provided (2-3 sentences).
3.  "investmentOutlook": An investment outlook, highlighting potential strengths and weaknesses (2-3 sentences).

Reply ONLY with a valid JSON object containing the keys "ticker", "companyOverview", "financialHealthAnalysis" and "investmentOutlook".
Do not include any introduction, explanation or markdown formatting.
Expected format:
{
  "ticker": "%s",
  "companyOverview": "...",
  "financialHealthAnalysis": "...",
  "investmentOutlook": "..."
}`,
			request.Ticker, request.CompanyName,
			request.CompanyName,
			formatValue(p, f.PERatio.Value),
			formatValue(p, f.ROE.Value),
			formatValue(p, f.DebtToEquity.Value),
			formatValue(p, f.DividendYield.Value),
			formatValue(p, t.RSI.Value), t.RSI.Interpretation.Text,
			formatValue(p, t.MACD.Values.Histogram), t.MACD.Interpretation.Text,
			formatValue(p, t.SMA(20)),
			formatValue(p, t.SMA(50)),
			request.Ticker,
		)
	}

	return p.Sprintf(`Para a ação com ticker %s (%s), com base nos seguintes dados financeiros e técnicos (simulados):
Dados Fundamentais:
    Nome da Empresa: %s,
    P/L: %s,
    ROE: %s%%,
    Dívida/Patrimônio: %s,
    Dividend Yield: %s%%
Dados Técnicos:
    IFR(14): %s (%s),
    MACD Histograma: %s (%s),
    MMS(20): %s,
    MMS(50): %s

Por favor, gere uma análise concisa para um investidor individual em PORTUGUÊS DO BRASIL.
A análise deve incluir:
1.  "companyOverview": Uma breve visão geral da empresa e seu setor de atuação principal (1-2 frases).
2.  "financialHealthAnalysis": Uma análise da saúde financeira da empresa com base nos dados fornecidos (2-3 frases).
3.  "investmentOutlook": Uma perspectiva de investimento, destacando potenciais pontos fortes e fracos (2-3 frases).

Responda SOMENTE com um objeto JSON válido contendo as chaves "ticker", "companyOverview", "financialHealthAnalysis" e "investmentOutlook".
Não inclua nenhuma introdução, explicação ou formatação markdown.
Exemplo de formato esperado:
{
  "ticker": "%s",
  "companyOverview": "...",
  "financialHealthAnalysis": "...",
  "investmentOutlook": "..."
}`,
		request.Ticker, request.CompanyName,
		request.CompanyName,
		formatValue(p, f.PERatio.Value),
		formatValue(p, f.ROE.Value),
		formatValue(p, f.DebtToEquity.Value),
		formatValue(p, f.DividendYield.Value),
		formatValue(p, t.RSI.Value), t.RSI.Interpretation.Text,
		formatValue(p, t.MACD.Values.Histogram), t.MACD.Interpretation.Text,
		formatValue(p, t.SMA(20)),
		formatValue(p, t.SMA(50)),
		request.Ticker,
	)
}
