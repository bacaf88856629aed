package rules

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedLocales = []language.Tag{language.BrazilianPortuguese, language.English}

var localeMatcher = language.NewMatcher(supportedLocales)

// ParseLocale matches a locale string against the supported locales; pt-BR is the fallback.
func ParseLocale(s string) language.Tag {
	_, idx, _ := localeMatcher.Match(language.Make(s))
	return supportedLocales[idx]
}

// Printer formats numbers with the locale's separators.
func Printer(locale language.Tag) *message.Printer {
	return message.NewPrinter(locale)
}

var labels = map[language.Tag]map[string]string{
	language.BrazilianPortuguese: {
		"rsi.overbought":             "Sobrecomprado (Potencial Sinal de Venda)",
		"rsi.oversold":               "Sobrevendido (Potencial Sinal de Compra)",
		"rsi.neutral":                "Neutro",
		"macd.bullish_crossover":     "Cruzamento Altista (Potencial Sinal de Compra)",
		"macd.bearish_crossover":     "Cruzamento Baixista (Potencial Sinal de Venda)",
		"macd.neutral":               "Neutro",
		"bollinger.above_upper_band": "Preço rompeu banda superior (Potencial Sobrecompra/Reversão).",
		"bollinger.below_lower_band": "Preço rompeu banda inferior (Potencial Sobrevenda/Reversão).",
		"bollinger.within_bands":     "Preço dentro das bandas.",
		"pe_ratio.high":              "Alto (Potencialmente Supervalorizado)",
		"pe_ratio.low":               "Baixo (Potencialmente Subvalorizado)",
		"pe_ratio.fair":              "Valorizado de forma justa",
		"pe_ratio.not_available":     "N/A devido a LPA negativo/zero",
		"peg_ratio.high":             "Alto (Crescimento pode não justificar P/L)",
		"peg_ratio.low":              "Baixo (Potencialmente Subvalorizado para Crescimento)",
		"peg_ratio.fair":             "Valorizado de forma justa para Crescimento",
		"peg_ratio.not_available":    "N/A",
		"pb_ratio.high":              "Alto (Potencialmente Supervalorizado)",
		"pb_ratio.low":               "Baixo (Potencialmente Subvalorizado)",
		"pb_ratio.fair":              "Valorizado de forma justa",
		"debt_to_equity.high":        "Alta Alavancagem (Maior Risco)",
		"debt_to_equity.low":         "Baixa Alavancagem (Menor Risco)",
		"debt_to_equity.moderate":    "Alavancagem Moderada",
		"current_ratio.strong":       "Forte Liquidez",
		"current_ratio.weak":         "Fraca Liquidez (Risco)",
		"current_ratio.acceptable":   "Liquidez Aceitável",
		"roe.strong":                 "Forte Rentabilidade",
		"roe.weak":                   "Fraca Rentabilidade",
		"roe.moderate":               "Rentabilidade Moderada",
		"eps.profitable":             "Lucrativa",
		"eps.unprofitable":           "Não Lucrativa",
		"market_cap.size_indicator":  "Indicador do Tamanho da Empresa",
		"dividend_yield.high":        "Alto DY",
		"dividend_yield.moderate":    "DY Moderado",
		"dividend_yield.low":         "Baixo DY ou Não Paga",
		"name.pe_ratio":              "Índice P/L",
		"name.peg_ratio":             "Índice PEG",
		"name.pb_ratio":              "Índice P/VP",
		"name.debt_to_equity":        "Dívida/Patrimônio",
		"name.current_ratio":         "Liquidez Corrente",
		"name.roe":                   "ROE",
		"name.eps":                   "LPA",
		"name.market_cap":            "Valor de Mercado (Bi)",
		"name.dividend_yield":        "Dividend Yield",
		"narrative.placeholder":      "Dados do relatório de IA indisponíveis.",
		"validation.no_tickers":      "Por favor, insira pelo menos um ticker de ação.",
		"validation.missing_start":   "Por favor, selecione uma data de início.",
		"validation.invalid_start":   "Data de início inválida, use o formato AAAA-MM-DD.",
		"validation.invalid_request": "Requisição inválida.",
		"summary.title":              "Resumo da Análise de Ações",
		"summary.no_data":            "Nenhum dado gerado para o período informado.",
	},
	language.English: {
		"rsi.overbought":             "Overbought (Potential Sell Signal)",
		"rsi.oversold":               "Oversold (Potential Buy Signal)",
		"rsi.neutral":                "Neutral",
		"macd.bullish_crossover":     "Bullish Crossover (Potential Buy Signal)",
		"macd.bearish_crossover":     "Bearish Crossover (Potential Sell Signal)",
		"macd.neutral":               "Neutral",
		"bollinger.above_upper_band": "Price broke above the upper band (Potential Overbought/Reversal).",
		"bollinger.below_lower_band": "Price broke below the lower band (Potential Oversold/Reversal).",
		"bollinger.within_bands":     "Price within the bands.",
		"pe_ratio.high":              "High (Potentially Overvalued)",
		"pe_ratio.low":               "Low (Potentially Undervalued)",
		"pe_ratio.fair":              "Fairly Valued",
		"pe_ratio.not_available":     "N/A due to negative/zero EPS",
		"peg_ratio.high":             "High (Growth may not justify P/E)",
		"peg_ratio.low":              "Low (Potentially Undervalued for Growth)",
		"peg_ratio.fair":             "Fairly Valued for Growth",
		"peg_ratio.not_available":    "N/A",
		"pb_ratio.high":              "High (Potentially Overvalued)",
		"pb_ratio.low":               "Low (Potentially Undervalued)",
		"pb_ratio.fair":              "Fairly Valued",
		"debt_to_equity.high":        "High Leverage (Higher Risk)",
		"debt_to_equity.low":         "Low Leverage (Lower Risk)",
		"debt_to_equity.moderate":    "Moderate Leverage",
		"current_ratio.strong":       "Strong Liquidity",
		"current_ratio.weak":         "Weak Liquidity (Risk)",
		"current_ratio.acceptable":   "Acceptable Liquidity",
		"roe.strong":                 "Strong Profitability",
		"roe.weak":                   "Weak Profitability",
		"roe.moderate":               "Moderate Profitability",
		"eps.profitable":             "Profitable",
		"eps.unprofitable":           "Not Profitable",
		"market_cap.size_indicator":  "Company Size Indicator",
		"dividend_yield.high":        "High Yield",
		"dividend_yield.moderate":    "Moderate Yield",
		"dividend_yield.low":         "Low Yield or No Dividend",
		"name.pe_ratio":              "P/E Ratio",
		"name.peg_ratio":             "PEG Ratio",
		"name.pb_ratio":              "P/B Ratio",
		"name.debt_to_equity":        "Debt to Equity",
		"name.current_ratio":         "Current Ratio",
		"name.roe":                   "Return on Equity",
		"name.eps":                   "EPS",
		"name.market_cap":            "Market Cap (B)",
		"name.dividend_yield":        "Dividend Yield",
		"narrative.placeholder":      "AI report data unavailable.",
		"validation.no_tickers":      "Please enter at least one stock ticker.",
		"validation.missing_start":   "Please select a start date.",
		"validation.invalid_start":   "Invalid start date, use the YYYY-MM-DD format.",
		"validation.invalid_request": "Invalid request payload.",
		"summary.title":              "Stock Analysis Summary",
		"summary.no_data":            "No data generated for the requested window.",
	},
}

// Message returns the localized text for key, falling back to pt-BR and then to the key itself.
func Message(locale language.Tag, key string) string {
	if text, ok := labels[locale][key]; ok {
		return text
	}
	if text, ok := labels[language.BrazilianPortuguese][key]; ok {
		return text
	}
	return key
}

// Label returns the display text of a metric category.
func Label(locale language.Tag, metric Metric, category Category) string {
	return Message(locale, string(metric)+"."+string(category))
}

// Name returns the display name of a metric.
func Name(locale language.Tag, metric Metric) string {
	return Message(locale, "name."+string(metric))
}
