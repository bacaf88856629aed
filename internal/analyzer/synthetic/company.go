package synthetic

import "fmt"

var companyNames = map[string]string{
	"AAPL":  "Apple Inc.",
	"MSFT":  "Microsoft Corp.",
	"GOOG":  "Alphabet Inc.",
	"AMZN":  "Amazon.com Inc.",
	"TSLA":  "Tesla Inc.",
	"NVDA":  "NVIDIA Corp.",
	"META":  "Meta Platforms Inc.",
	"JPM":   "JPMorgan Chase & Co.",
	"V":     "Visa Inc.",
	"JNJ":   "Johnson & Johnson",
	"PETR4": "Petrobras PN",
	"VALE3": "Vale ON",
	"ITUB4": "Itaú Unibanco PN",
	"BBDC4": "Bradesco PN",
	"MGLU3": "Magazine Luiza ON",
	"WEGE3": "WEG ON",
}

// CompanyName resolves a ticker to its company name, or a generic name for unknown tickers.
func CompanyName(ticker string) string {
	if name, ok := companyNames[ticker]; ok {
		return name
	}
	return fmt.Sprintf("%s Corp S.A.", ticker)
}
