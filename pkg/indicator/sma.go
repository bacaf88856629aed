// Package indicator computes moving-average based overlays for a daily price series.
package indicator

// SMA returns the simple moving average of prices aligned 1:1 with the input.
// The first period-1 entries are nil. When period is not positive or exceeds the
// number of prices every entry is nil.
func SMA(prices []float64, period int) []*float64 {
	out := make([]*float64, len(prices))
	if period <= 0 || period > len(prices) {
		return out
	}

	for i := period - 1; i < len(prices); i++ {
		sum := 0.0
		for _, p := range prices[i-period+1 : i+1] {
			sum += p
		}
		v := Round2(sum / float64(period))
		out[i] = &v
	}
	return out
}

// Last returns the final entry of a computed series, nil when empty.
func Last(values []*float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return values[len(values)-1]
}
