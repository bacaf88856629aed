package rules

import (
	"golang-stock-analyzer/internal/entity"

	"golang.org/x/text/language"
)

func interpretation(locale language.Tag, metric Metric, category Category) entity.Interpretation {
	return entity.Interpretation{
		Category: string(category),
		Text:     Label(locale, metric, category),
	}
}

func InterpretNumeric(locale language.Tag, table NumericTable, v *float64) entity.Interpretation {
	return interpretation(locale, table.Metric, table.EvaluateOptional(v))
}

func InterpretMACD(locale language.Tag, m entity.MACDValues) entity.Interpretation {
	return interpretation(locale, MACDTable.Metric, MACDTable.Evaluate(m))
}

func InterpretBollinger(locale language.Tag, pos BandPosition) entity.Interpretation {
	return interpretation(locale, BollingerTable.Metric, BollingerTable.Evaluate(pos))
}

// FundamentalMetric builds a metric with its localized name and interpretation.
func FundamentalMetric(locale language.Tag, table NumericTable, v *float64) entity.FundamentalMetric {
	return entity.FundamentalMetric{
		Name:           Name(locale, table.Metric),
		Value:          v,
		Interpretation: InterpretNumeric(locale, table, v),
	}
}
