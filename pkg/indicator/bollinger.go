package indicator

import "math"

// Bands holds the three Bollinger lines, each aligned with the input prices.
type Bands struct {
	Middle []*float64
	Upper  []*float64
	Lower  []*float64
}

// Bollinger computes Bollinger Bands over period with k standard deviations.
// The deviation is the population deviation of the trailing window around the middle band.
func Bollinger(prices []float64, period int, k float64) Bands {
	middle := SMA(prices, period)
	bands := Bands{
		Middle: middle,
		Upper:  make([]*float64, len(prices)),
		Lower:  make([]*float64, len(prices)),
	}

	for i := range prices {
		if middle[i] == nil {
			continue
		}
		mean := *middle[i]
		variance := 0.0
		for _, p := range prices[i-period+1 : i+1] {
			variance += (p - mean) * (p - mean)
		}
		sd := math.Sqrt(variance / float64(period))

		upper := Round2(mean + k*sd)
		lower := Round2(mean - k*sd)
		bands.Upper[i] = &upper
		bands.Lower[i] = &lower
	}
	return bands
}
