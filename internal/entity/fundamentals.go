package entity

type FundamentalMetric struct {
	Name           string         `json:"name"`
	Value          *float64       `json:"value"`
	Interpretation Interpretation `json:"interpretation"`
}

// FundamentalsSnapshot is a fixed set of valuation and health metrics for one company.
type FundamentalsSnapshot struct {
	CompanyName   string            `json:"company_name"`
	PERatio       FundamentalMetric `json:"pe_ratio"`
	PEGRatio      FundamentalMetric `json:"peg_ratio"`
	PBRatio       FundamentalMetric `json:"pb_ratio"`
	DebtToEquity  FundamentalMetric `json:"debt_to_equity"`
	CurrentRatio  FundamentalMetric `json:"current_ratio"`
	ROE           FundamentalMetric `json:"roe"`
	EPS           FundamentalMetric `json:"eps"`
	MarketCap     FundamentalMetric `json:"market_cap"`
	DividendYield FundamentalMetric `json:"dividend_yield"`
}
