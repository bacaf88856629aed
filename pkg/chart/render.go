// Package chart renders analysis series as PNG line charts.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"golang-stock-analyzer/internal/entity"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData is returned when no series has at least two points.
var ErrNotEnoughData = errors.New("not enough data points to render a chart")

// Options sets the image size in pixels.
type Options struct {
	Width  int
	Height int
}

var palette = []drawing.Color{
	drawing.ColorFromHex("2563eb"),
	drawing.ColorFromHex("dc2626"),
	drawing.ColorFromHex("16a34a"),
	drawing.ColorFromHex("d97706"),
	drawing.ColorFromHex("7c3aed"),
	drawing.ColorFromHex("0891b2"),
	drawing.ColorFromHex("db2777"),
	drawing.ColorFromHex("4b5563"),
	drawing.ColorFromHex("65a30d"),
	drawing.ColorFromHex("9333ea"),
}

// RenderStockChart draws the price of one analysis with its SMA and Bollinger overlays.
func RenderStockChart(a entity.StockAnalysis, opts Options) ([]byte, error) {
	overlays := []struct {
		name  string
		value func(entity.ChartPoint) *float64
		style chart.Style
	}{
		{"Price", func(p entity.ChartPoint) *float64 { return p.Price }, chart.Style{StrokeColor: palette[0], StrokeWidth: 2}},
		{"SMA 20", func(p entity.ChartPoint) *float64 { return p.SMA20 }, chart.Style{StrokeColor: palette[3], StrokeWidth: 1.5}},
		{"SMA 50", func(p entity.ChartPoint) *float64 { return p.SMA50 }, chart.Style{StrokeColor: palette[4], StrokeWidth: 1.5}},
		{"BB Upper", func(p entity.ChartPoint) *float64 { return p.BBUpper }, dashed(palette[7])},
		{"BB Middle", func(p entity.ChartPoint) *float64 { return p.BBMiddle }, dashed(palette[5])},
		{"BB Lower", func(p entity.ChartPoint) *float64 { return p.BBLower }, dashed(palette[7])},
	}

	var series []chart.Series
	for _, o := range overlays {
		var xs []time.Time
		var ys []float64
		for _, p := range a.ChartData {
			if v := o.value(p); v != nil {
				xs = append(xs, p.Date)
				ys = append(ys, *v)
			}
		}
		if len(xs) < 2 {
			continue
		}
		series = append(series, chart.TimeSeries{Name: o.name, Style: o.style, XValues: xs, YValues: ys})
	}

	title := a.Ticker
	if a.CompanyName != "" {
		title = fmt.Sprintf("%s - %s", a.Ticker, a.CompanyName)
	}
	return render(title, "%.2f", series, opts)
}

// RenderTableChart draws one line per table column. Missing points are skipped.
func RenderTableChart(title, yFormat string, table entity.ChartTable, opts Options) ([]byte, error) {
	var series []chart.Series
	for i, ticker := range table.Tickers {
		xs, ys := table.Column(i)
		if len(xs) < 2 {
			continue
		}
		series = append(series, chart.TimeSeries{
			Name:    ticker,
			Style:   chart.Style{StrokeColor: palette[i%len(palette)], StrokeWidth: 2},
			XValues: xs,
			YValues: ys,
		})
	}
	return render(title, yFormat, series, opts)
}

func dashed(c drawing.Color) chart.Style {
	return chart.Style{StrokeColor: c, StrokeWidth: 1, StrokeDashArray: []float64{5.0, 3.0}}
}

func render(title, yFormat string, series []chart.Series, opts Options) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNotEnoughData
	}

	graph := chart.Chart{
		Title:  title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("02 Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf(yFormat, f)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
