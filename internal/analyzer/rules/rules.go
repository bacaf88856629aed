// Package rules maps indicator and fundamental values to interpretation categories.
// Every threshold lives in a Table so it can be audited and tested on its own.
package rules

import "golang-stock-analyzer/internal/entity"

type Category string

const (
	Neutral          Category = "neutral"
	Overbought       Category = "overbought"
	Oversold         Category = "oversold"
	BullishCrossover Category = "bullish_crossover"
	BearishCrossover Category = "bearish_crossover"
	AboveUpperBand   Category = "above_upper_band"
	BelowLowerBand   Category = "below_lower_band"
	WithinBands      Category = "within_bands"
	High             Category = "high"
	Low              Category = "low"
	Fair             Category = "fair"
	Moderate         Category = "moderate"
	Strong           Category = "strong"
	Weak             Category = "weak"
	Acceptable       Category = "acceptable"
	Profitable       Category = "profitable"
	Unprofitable     Category = "unprofitable"
	SizeIndicator    Category = "size_indicator"
	NotAvailable     Category = "not_available"
)

type Metric string

const (
	MetricRSI           Metric = "rsi"
	MetricMACD          Metric = "macd"
	MetricBollinger     Metric = "bollinger"
	MetricPERatio       Metric = "pe_ratio"
	MetricPEGRatio      Metric = "peg_ratio"
	MetricPBRatio       Metric = "pb_ratio"
	MetricDebtToEquity  Metric = "debt_to_equity"
	MetricCurrentRatio  Metric = "current_ratio"
	MetricROE           Metric = "roe"
	MetricEPS           Metric = "eps"
	MetricMarketCap     Metric = "market_cap"
	MetricDividendYield Metric = "dividend_yield"
)

// Rule assigns Category to values matching When.
type Rule[T any] struct {
	Category Category
	When     func(T) bool
}

// Table is an ordered rule list; the first match wins, Default applies otherwise.
type Table[T any] struct {
	Metric  Metric
	Rules   []Rule[T]
	Default Category
}

func (t Table[T]) Evaluate(v T) Category {
	for _, r := range t.Rules {
		if r.When(v) {
			return r.Category
		}
	}
	return t.Default
}

// NumericTable evaluates optional numbers; a nil value maps to Missing.
type NumericTable struct {
	Table[float64]
	Missing Category
}

func (t NumericTable) EvaluateOptional(v *float64) Category {
	if v == nil {
		return t.Missing
	}
	return t.Evaluate(*v)
}

// BandPosition is the last price relative to the last Bollinger bands.
type BandPosition struct {
	Price float64
	Upper *float64
	Lower *float64
}

func above(threshold float64) func(float64) bool {
	return func(v float64) bool { return v > threshold }
}

func below(threshold float64) func(float64) bool {
	return func(v float64) bool { return v < threshold }
}

func numeric(metric Metric, def, missing Category, rules ...Rule[float64]) NumericTable {
	return NumericTable{
		Table:   Table[float64]{Metric: metric, Rules: rules, Default: def},
		Missing: missing,
	}
}

var RSITable = numeric(MetricRSI, Neutral, Neutral,
	Rule[float64]{Category: Overbought, When: above(70)},
	Rule[float64]{Category: Oversold, When: below(30)},
)

var MACDTable = Table[entity.MACDValues]{
	Metric: MetricMACD,
	Rules: []Rule[entity.MACDValues]{
		{Category: BullishCrossover, When: func(m entity.MACDValues) bool {
			return m.Line != nil && m.Signal != nil && m.Histogram != nil &&
				*m.Line > *m.Signal && *m.Histogram > 0
		}},
		{Category: BearishCrossover, When: func(m entity.MACDValues) bool {
			return m.Line != nil && m.Signal != nil && m.Histogram != nil &&
				*m.Line < *m.Signal && *m.Histogram < 0
		}},
	},
	Default: Neutral,
}

var BollingerTable = Table[BandPosition]{
	Metric: MetricBollinger,
	Rules: []Rule[BandPosition]{
		{Category: AboveUpperBand, When: func(b BandPosition) bool { return b.Upper != nil && b.Price > *b.Upper }},
		{Category: BelowLowerBand, When: func(b BandPosition) bool { return b.Lower != nil && b.Price < *b.Lower }},
	},
	Default: WithinBands,
}

var (
	PERatioTable = numeric(MetricPERatio, Fair, NotAvailable,
		Rule[float64]{Category: High, When: above(25)},
		Rule[float64]{Category: Low, When: below(15)},
	)
	PEGRatioTable = numeric(MetricPEGRatio, Fair, NotAvailable,
		Rule[float64]{Category: High, When: above(2)},
		Rule[float64]{Category: Low, When: below(1)},
	)
	PBRatioTable = numeric(MetricPBRatio, Fair, NotAvailable,
		Rule[float64]{Category: High, When: above(3)},
		Rule[float64]{Category: Low, When: below(1)},
	)
	DebtToEquityTable = numeric(MetricDebtToEquity, Moderate, NotAvailable,
		Rule[float64]{Category: High, When: above(1)},
		Rule[float64]{Category: Low, When: below(0.5)},
	)
	CurrentRatioTable = numeric(MetricCurrentRatio, Acceptable, NotAvailable,
		Rule[float64]{Category: Strong, When: above(2)},
		Rule[float64]{Category: Weak, When: below(1)},
	)
	ROETable = numeric(MetricROE, Moderate, NotAvailable,
		Rule[float64]{Category: Strong, When: above(15)},
		Rule[float64]{Category: Weak, When: below(5)},
	)
	EPSTable = numeric(MetricEPS, Unprofitable, NotAvailable,
		Rule[float64]{Category: Profitable, When: above(0)},
	)
	DividendYieldTable = numeric(MetricDividendYield, Low, NotAvailable,
		Rule[float64]{Category: High, When: above(5)},
		Rule[float64]{Category: Moderate, When: above(2)},
	)
)

var MarketCapTable = numeric(MetricMarketCap, SizeIndicator, SizeIndicator)
