package service

import (
	"math/rand/v2"
	"time"

	"golang-stock-analyzer/internal/analyzer/rules"
	"golang-stock-analyzer/internal/analyzer/synthetic"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/indicator"
	"golang-stock-analyzer/pkg/utils"
)

// chart overlays are always the 20 and 50 day averages
const (
	chartShortSMA = 20
	chartLongSMA  = 50
)

// analyzeTicker runs the synthetic pipeline of one ticker. The narrative is filled in later.
func (s *analyzerService) analyzeTicker(rng *rand.Rand, ticker string, start, today time.Time) entity.StockAnalysis {
	ind := s.cfg.Analyzer.Indicators

	series := synthetic.GenerateSeries(rng, ticker, start, today)
	prices := series.Prices()
	lastPrice := series.Last()

	smas := make([]entity.MovingAverage, 0, len(ind.SMAPeriods))
	for _, period := range ind.SMAPeriods {
		smas = append(smas, entity.MovingAverage{
			Period: period,
			Value:  indicator.Last(indicator.SMA(prices, period)),
		})
	}

	bands := indicator.Bollinger(prices, ind.BollingerPeriod, ind.BollingerK)
	lastBands := entity.BollingerValues{
		Middle: indicator.Last(bands.Middle),
		Upper:  indicator.Last(bands.Upper),
		Lower:  indicator.Last(bands.Lower),
	}

	osc := synthetic.Oscillate(rng, synthetic.OscillatorMode(s.cfg.Analyzer.OscillatorMode), prices)

	technical := entity.TechnicalSnapshot{
		SMAs: smas,
		RSI: entity.RSI{
			Period:         synthetic.RSIPeriod,
			Value:          utils.ToPointer(osc.RSI),
			Interpretation: rules.InterpretNumeric(s.locale, rules.RSITable, utils.ToPointer(osc.RSI)),
		},
		MACD: entity.MACD{
			Values:         osc.MACD,
			Interpretation: rules.InterpretMACD(s.locale, osc.MACD),
		},
		Bollinger: entity.Bollinger{
			Values: lastBands,
			Interpretation: rules.InterpretBollinger(s.locale, rules.BandPosition{
				Price: lastPrice,
				Upper: lastBands.Upper,
				Lower: lastBands.Lower,
			}),
		},
	}

	fundamentals := synthetic.SynthesizeFundamentals(rng, ticker, lastPrice, s.locale)

	return entity.StockAnalysis{
		Ticker:       ticker,
		Market:       synthetic.Market(ticker),
		CompanyName:  fundamentals.CompanyName,
		PricePoints:  series,
		ChartData:    buildChartData(series, prices, bands),
		Technical:    technical,
		Fundamentals: fundamentals,
	}
}

func buildChartData(series entity.Series, prices []float64, bands indicator.Bands) []entity.ChartPoint {
	short := indicator.SMA(prices, chartShortSMA)
	long := indicator.SMA(prices, chartLongSMA)

	points := make([]entity.ChartPoint, len(series))
	for i, p := range series {
		points[i] = entity.ChartPoint{
			Date:     p.Date,
			Price:    utils.ToPointer(p.Price),
			SMA20:    short[i],
			SMA50:    long[i],
			BBMiddle: bands.Middle[i],
			BBUpper:  bands.Upper[i],
			BBLower:  bands.Lower[i],
		}
	}
	return points
}
