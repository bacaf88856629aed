package synthetic

import (
	"math/rand/v2"

	"golang-stock-analyzer/internal/analyzer/rules"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/indicator"

	"golang.org/x/text/language"
)

func round2Ptr(v float64) *float64 {
	r := indicator.Round2(v)
	return &r
}

// SynthesizeFundamentals draws the fundamental metrics of ticker. The draw order is fixed.
func SynthesizeFundamentals(rng *rand.Rand, ticker string, lastPrice float64, locale language.Tag) entity.FundamentalsSnapshot {
	br := Market(ticker) == common.MarketBR

	var marketCap float64
	if br {
		marketCap = rng.Float64()*500 + 5
	} else {
		marketCap = rng.Float64()*2000 + 10
	}

	eps := indicator.Round2(rng.Float64()*10 - 2)

	var pe, peg *float64
	if eps > 0 {
		pe = round2Ptr(lastPrice / eps)
	}
	if pe != nil && *pe != 0 {
		peg = round2Ptr(*pe / (rng.Float64()*2 + 0.5))
	}

	pb := round2Ptr(rng.Float64()*5 + 0.5)
	de := round2Ptr(rng.Float64() * 2)
	cr := round2Ptr(rng.Float64()*3 + 0.5)
	roe := round2Ptr(rng.Float64()*30 - 10)

	var dy *float64
	if br {
		dy = round2Ptr(rng.Float64() * 12)
	} else {
		dy = round2Ptr(rng.Float64() * 5)
	}

	return entity.FundamentalsSnapshot{
		CompanyName:   CompanyName(ticker),
		PERatio:       rules.FundamentalMetric(locale, rules.PERatioTable, pe),
		PEGRatio:      rules.FundamentalMetric(locale, rules.PEGRatioTable, peg),
		PBRatio:       rules.FundamentalMetric(locale, rules.PBRatioTable, pb),
		DebtToEquity:  rules.FundamentalMetric(locale, rules.DebtToEquityTable, de),
		CurrentRatio:  rules.FundamentalMetric(locale, rules.CurrentRatioTable, cr),
		ROE:           rules.FundamentalMetric(locale, rules.ROETable, roe),
		EPS:           rules.FundamentalMetric(locale, rules.EPSTable, &eps),
		MarketCap:     rules.FundamentalMetric(locale, rules.MarketCapTable, round2Ptr(marketCap)),
		DividendYield: rules.FundamentalMetric(locale, rules.DividendYieldTable, dy),
	}
}
