package synthetic

import (
	"testing"
	"time"

	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/indicator"
	"golang-stock-analyzer/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation(common.DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMarket(t *testing.T) {
	assert.Equal(t, common.MarketBR, Market("PETR4"))
	assert.Equal(t, common.MarketBR, Market("VALE3"))
	assert.Equal(t, common.MarketUS, Market("AAPL"))
	assert.Equal(t, common.MarketUS, Market("V"))
	assert.Equal(t, common.MarketUS, Market(""))
}

func TestGenerateSeriesLength(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		today    string
		expected int
	}{
		{"same day", "2024-03-10", "2024-03-10", 1},
		{"one week", "2024-03-01", "2024-03-07", 7},
		{"across leap day", "2024-02-27", "2024-03-02", 5},
		{"across year end", "2023-12-30", "2024-01-02", 4},
		{"start after today", "2024-03-11", "2024-03-10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := GenerateSeries(utils.NewRand(42), "AAPL", day(tt.start), day(tt.today))
			require.Len(t, series, tt.expected)
			if tt.expected == 0 {
				return
			}
			assert.Equal(t, tt.start, series[0].Date.Format(common.DateLayout))
			assert.Equal(t, tt.today, series[len(series)-1].Date.Format(common.DateLayout))
			assertConsecutiveDays(t, series)
		})
	}
}

func assertConsecutiveDays(t *testing.T, series entity.Series) {
	t.Helper()
	seen := make(map[string]int)
	for i, p := range series {
		seen[p.Date.Format(common.DateLayout)]++
		if i == 0 {
			continue
		}
		prev := series[i-1].Date
		want := time.Date(prev.Year(), prev.Month(), prev.Day()+1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, want.Format(common.DateLayout), p.Date.Format(common.DateLayout), "gap or repeat at %d", i)
	}
	for date, n := range seen {
		assert.Equal(t, 1, n, "date %s repeated", date)
	}
}

func TestGenerateSeriesAcrossDSTStart(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	start := time.Date(2018, 10, 1, 0, 0, 0, 0, loc)
	today := time.Date(2018, 12, 1, 0, 0, 0, 0, loc)
	series := GenerateSeries(utils.NewRand(1), "PETR4", start, today)

	// October has 31 days and November 30, plus December 1st.
	require.Len(t, series, 31+30+1)
	assert.Equal(t, "2018-10-01", series[0].Date.Format(common.DateLayout))
	assert.Equal(t, "2018-12-01", series[len(series)-1].Date.Format(common.DateLayout))
	assertConsecutiveDays(t, series)
}

func TestGenerateSeriesIgnoresTimeOfDay(t *testing.T) {
	start := day("2024-03-01").Add(23 * time.Hour)
	today := day("2024-03-03").Add(1 * time.Hour)

	series := GenerateSeries(utils.NewRand(1), "MSFT", start, today)
	require.Len(t, series, 3)
	assert.Equal(t, day("2024-03-01"), series[0].Date)
	assert.Equal(t, day("2024-03-03"), series[2].Date)
}

func TestGenerateSeriesPrices(t *testing.T) {
	series := GenerateSeries(utils.NewRand(7), "PETR4", day("2023-01-01"), day("2024-12-31"))
	require.NotEmpty(t, series)

	first := series[0].Price
	assert.GreaterOrEqual(t, first, 10.0)
	assert.LessOrEqual(t, first, 100.0)

	for i, p := range series {
		assert.Greater(t, p.Price, 0.0)
		assert.Equal(t, indicator.Round2(p.Price), p.Price, "price not rounded at %d", i)
		if i > 0 {
			assert.Equal(t, series[i-1].Date.AddDate(0, 0, 1), p.Date)
		}
	}
}

func TestGenerateSeriesUSSeedRange(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		series := GenerateSeries(utils.NewRand(seed), "NVDA", day("2024-01-01"), day("2024-01-01"))
		require.Len(t, series, 1)
		assert.GreaterOrEqual(t, series[0].Price, 50.0)
		assert.LessOrEqual(t, series[0].Price, 400.0)
	}
}

func TestGenerateSeriesDeterministic(t *testing.T) {
	a := GenerateSeries(utils.NewRand(99), "AAPL", day("2024-01-01"), day("2024-03-01"))
	b := GenerateSeries(utils.NewRand(99), "AAPL", day("2024-01-01"), day("2024-03-01"))
	assert.Equal(t, a, b)
}

func TestCompanyName(t *testing.T) {
	assert.Equal(t, "Apple Inc.", CompanyName("AAPL"))
	assert.Equal(t, "Petrobras PN", CompanyName("PETR4"))
	assert.Equal(t, "XYZ1 Corp S.A.", CompanyName("XYZ1"))
}
