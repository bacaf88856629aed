// Package synthetic produces mock market data: daily price series, oscillators and fundamentals.
// All randomness comes from the *rand.Rand passed in so a fixed seed reproduces a run.
package synthetic

import (
	"math/rand/v2"
	"time"
	"unicode"

	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/indicator"
	"golang-stock-analyzer/pkg/utils"
)

const minPrice = 0.5

// Market classifies a ticker: a trailing digit marks a Brazilian listing.
func Market(ticker string) string {
	if ticker == "" {
		return common.MarketUS
	}
	r := rune(ticker[len(ticker)-1])
	if unicode.IsDigit(r) {
		return common.MarketBR
	}
	return common.MarketUS
}

func seedPrice(rng *rand.Rand, ticker string) float64 {
	if Market(ticker) == common.MarketBR {
		return 10 + rng.Float64()*90
	}
	return 50 + rng.Float64()*350
}

// GenerateSeries returns one point per calendar day from start to today inclusive, each dated
// midnight UTC of its calendar day. The series is empty when start is after today.
func GenerateSeries(rng *rand.Rand, ticker string, start, today time.Time) entity.Series {
	n := utils.DaysBetweenInclusive(start, today)
	if n == 0 {
		return entity.Series{}
	}
	first := utils.CalendarDay(start)

	price := seedPrice(rng, ticker)
	series := make(entity.Series, 0, n)
	for i := 0; i < n; i++ {
		series = append(series, entity.PricePoint{Date: utils.AddDays(first, i), Price: indicator.Round2(price)})

		price *= 1 + (rng.Float64()-0.48)*0.05
		if price < minPrice {
			price = minPrice
		}
	}
	return series
}
