package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-analyzer/internal/analyzer/rules"
	"golang-stock-analyzer/internal/entity"

	"golang.org/x/text/language"
)

const maxMessageLen = 4090

func categoryIcon(category string) string {
	switch rules.Category(category) {
	case rules.Oversold, rules.BullishCrossover, rules.BelowLowerBand:
		return "🟢"
	case rules.Overbought, rules.BearishCrossover, rules.AboveUpperBand:
		return "🔴"
	default:
		return "🟡"
	}
}

func formatOptional(locale language.Tag, v *float64) string {
	if v == nil {
		return "N/A"
	}
	return rules.Printer(locale).Sprintf("%.2f", *v)
}

func formatAnalysisEntry(a entity.StockAnalysis, locale language.Tag) string {
	p := rules.Printer(locale)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📈 *- - - - - %s - - - - -*\n", a.Ticker))
	sb.WriteString(fmt.Sprintf("🏢 %s (%s)\n", a.CompanyName, a.Market))

	if n := len(a.PricePoints); n > 0 {
		first, last := a.PricePoints[0].Price, a.PricePoints[n-1].Price
		change := 0.0
		if first != 0 {
			change = (last/first - 1) * 100
		}
		sign := ""
		if change >= 0 {
			sign = "+"
		}
		sb.WriteString(p.Sprintf("💰 %.2f (%s%.2f%%)\n", last, sign, change))
	}

	t := a.Technical
	sb.WriteString(fmt.Sprintf("%s *RSI(%d):* %s - %s\n", categoryIcon(t.RSI.Interpretation.Category), t.RSI.Period, formatOptional(locale, t.RSI.Value), t.RSI.Interpretation.Text))
	sb.WriteString(fmt.Sprintf("%s *MACD:* %s - %s\n", categoryIcon(t.MACD.Interpretation.Category), formatOptional(locale, t.MACD.Values.Histogram), t.MACD.Interpretation.Text))
	sb.WriteString(fmt.Sprintf("%s *Bollinger:* %s\n", categoryIcon(t.Bollinger.Interpretation.Category), t.Bollinger.Interpretation.Text))

	pe := a.Fundamentals.PERatio
	sb.WriteString(fmt.Sprintf("📊 *%s:* %s - %s\n", pe.Name, formatOptional(locale, pe.Value), pe.Interpretation.Text))

	if !a.Report.Placeholder && a.Report.InvestmentOutlook != "" {
		sb.WriteString(fmt.Sprintf("💡 %s\n", a.Report.InvestmentOutlook))
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatAnalysisSummary formats a run into Markdown messages for Telegram,
// each one below the Telegram message size limit.
func FormatAnalysisSummary(run *entity.AnalysisRun, locale language.Tag) []string {
	title := rules.Message(locale, "summary.title")
	if run == nil || len(run.Analyses) == 0 {
		return []string{fmt.Sprintf("📊 *%s*\n\n%s", title, rules.Message(locale, "summary.no_data"))}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("📊 *%s* 📊\n📅 %s\n\n", title, run.StartDate.Format("2006-01-02")))
		} else {
			current.WriteString(fmt.Sprintf("---*%s (%d)*---\n\n", title, part))
		}
	}
	startNewPart()

	for _, a := range run.Analyses {
		entry := formatAnalysisEntry(a, locale)
		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}

	return append(messages, current.String())
}

// FormatErrorAlertMessage formats a failure alert.
func FormatErrorAlertMessage(at time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, at.Format("2006-01-02 15:04:05"), errType, errMsg, data)
}
