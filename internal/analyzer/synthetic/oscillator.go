package synthetic

import (
	"math"
	"math/rand/v2"

	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/indicator"
	"golang-stock-analyzer/pkg/utils"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
)

type OscillatorMode string

const (
	// ModeSynthetic draws RSI and MACD at random, independent of the series.
	ModeSynthetic OscillatorMode = "synthetic"
	// ModeComputed derives RSI and MACD from the series, drawing at random only when it is too short.
	ModeComputed OscillatorMode = "computed"
)

const (
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// Oscillators holds the last RSI and MACD values of a series.
type Oscillators struct {
	RSI  float64
	MACD entity.MACDValues
}

// SynthesizeRSI draws an integer RSI in [15, 85].
func SynthesizeRSI(rng *rand.Rand) float64 {
	return float64(15 + rng.IntN(85-15+1))
}

// SynthesizeMACD draws a MACD line and a signal line near it; the histogram is their difference.
func SynthesizeMACD(rng *rand.Rand) entity.MACDValues {
	line := indicator.Round2((rng.Float64() - 0.5) * 5)
	signal := indicator.Round2(line + (rng.Float64()-0.5)*1)
	histogram := indicator.Round2(line - signal)
	return entity.MACDValues{
		Line:      utils.ToPointer(line),
		Signal:    utils.ToPointer(signal),
		Histogram: utils.ToPointer(histogram),
	}
}

// ComputeRSI returns the last RSI of prices, false when the series is too short.
func ComputeRSI(prices []float64) (float64, bool) {
	if len(prices) <= RSIPeriod {
		return 0, false
	}
	rsi := helper.ChanToSlice(momentum.NewRsiWithPeriod[float64](RSIPeriod).Compute(helper.SliceToChan(prices)))
	if len(rsi) == 0 || !finite(rsi[len(rsi)-1]) {
		return 0, false
	}
	return indicator.Round2(rsi[len(rsi)-1]), true
}

// ComputeMACD returns the last MACD values of prices, false when the series is too short.
func ComputeMACD(prices []float64) (entity.MACDValues, bool) {
	if len(prices) < MACDSlowPeriod+MACDSignalPeriod-1 {
		return entity.MACDValues{}, false
	}

	macdCh, signalCh := trend.NewMacdWithPeriod[float64](MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod).
		Compute(helper.SliceToChan(prices))

	// both outputs share one upstream, so they must be drained together
	var signals []float64
	done := make(chan struct{})
	go func() {
		defer close(done)
		signals = helper.ChanToSlice(signalCh)
	}()
	macds := helper.ChanToSlice(macdCh)
	<-done

	if len(macds) == 0 || len(signals) == 0 {
		return entity.MACDValues{}, false
	}
	lastMACD, lastSignal := macds[len(macds)-1], signals[len(signals)-1]
	if !finite(lastMACD) || !finite(lastSignal) {
		return entity.MACDValues{}, false
	}

	line := indicator.Round2(lastMACD)
	signal := indicator.Round2(lastSignal)
	return entity.MACDValues{
		Line:      utils.ToPointer(line),
		Signal:    utils.ToPointer(signal),
		Histogram: utils.ToPointer(indicator.Round2(line - signal)),
	}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Oscillate produces the oscillators of a series according to mode.
func Oscillate(rng *rand.Rand, mode OscillatorMode, prices []float64) Oscillators {
	if mode == ModeComputed {
		rsi, rsiOK := ComputeRSI(prices)
		macd, macdOK := ComputeMACD(prices)
		if rsiOK && macdOK {
			return Oscillators{RSI: rsi, MACD: macd}
		}
	}
	return Oscillators{RSI: SynthesizeRSI(rng), MACD: SynthesizeMACD(rng)}
}
