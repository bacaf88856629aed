package service

import (
	"math"
	"sort"
	"time"

	"golang-stock-analyzer/internal/entity"
)

// BuildPriceTable outer-joins the price series of all analyses on date.
// Each analysis gets its own column, so a repeated ticker appears twice.
func BuildPriceTable(analyses []entity.StockAnalysis) entity.ChartTable {
	tickers := make([]string, len(analyses))
	byDate := make(map[time.Time][]float64)

	for col, a := range analyses {
		tickers[col] = a.Ticker
		for _, p := range a.PricePoints {
			row, ok := byDate[p.Date]
			if !ok {
				row = nanRow(len(analyses))
				byDate[p.Date] = row
			}
			row[col] = p.Price
		}
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]entity.ChartRow, len(dates))
	for i, d := range dates {
		rows[i] = entity.ChartRow{Date: d, Values: byDate[d]}
	}
	return entity.ChartTable{Tickers: tickers, Rows: rows}
}

// BuildNormalizedTable rebases every column of the price table to 100 at that column's first point.
// A column whose first point is zero, or that has no point at all, is NaN throughout.
func BuildNormalizedTable(analyses []entity.StockAnalysis) entity.ChartTable {
	prices := BuildPriceTable(analyses)
	if len(prices.Rows) == 0 {
		return prices
	}

	base := nanRow(len(prices.Tickers))
	for col := range base {
		for _, r := range prices.Rows {
			if !math.IsNaN(r.Values[col]) {
				base[col] = r.Values[col]
				break
			}
		}
	}

	rows := make([]entity.ChartRow, len(prices.Rows))
	for i, r := range prices.Rows {
		values := make([]float64, len(r.Values))
		for col, v := range r.Values {
			b := base[col]
			if math.IsNaN(b) || b == 0 || math.IsNaN(v) {
				values[col] = math.NaN()
				continue
			}
			values[col] = v / b * 100
		}
		rows[i] = entity.ChartRow{Date: r.Date, Values: values}
	}
	return entity.ChartTable{Tickers: prices.Tickers, Rows: rows}
}

func nanRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}
