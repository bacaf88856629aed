package indicator

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(ptrs []*float64) []interface{} {
	out := make([]interface{}, len(ptrs))
	for i, p := range ptrs {
		if p == nil {
			out[i] = nil
			continue
		}
		out[i] = *p
	}
	return out
}

func TestSMAExample(t *testing.T) {
	got := SMA([]float64{10, 12, 11, 13, 14}, 3)
	assert.Equal(t, []interface{}{nil, nil, 11.0, 12.0, 12.67}, values(got))
}

func TestSMAUndefinedWhenNotComputable(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		period int
	}{
		{name: "period longer than series", prices: []float64{1, 2, 3}, period: 4},
		{name: "zero period", prices: []float64{1, 2, 3}, period: 0},
		{name: "negative period", prices: []float64{1, 2, 3}, period: -2},
		{name: "empty series", prices: nil, period: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(tt.prices, tt.period)
			require.Len(t, got, len(tt.prices))
			for _, v := range got {
				assert.Nil(t, v)
			}
		})
	}
}

func TestSMAWindowBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	prices := make([]float64, 120)
	for i := range prices {
		prices[i] = 5 + rng.Float64()*200
	}

	for _, period := range []int{1, 2, 5, 20, 50, 120} {
		got := SMA(prices, period)
		require.Len(t, got, len(prices))
		for i, v := range got {
			if i < period-1 {
				assert.Nil(t, v, "period %d index %d", period, i)
				continue
			}
			require.NotNil(t, v, "period %d index %d", period, i)
			lo, hi := prices[i], prices[i]
			for _, p := range prices[i-period+1 : i+1] {
				lo = min(lo, p)
				hi = max(hi, p)
			}
			// rounding to cents can push the mean half a cent outside the window
			assert.GreaterOrEqual(t, *v, lo-0.005)
			assert.LessOrEqual(t, *v, hi+0.005)
		}
	}
}

func TestSMAPeriodOneRoundsPrices(t *testing.T) {
	got := SMA([]float64{1.234, 5.678}, 1)
	assert.Equal(t, []interface{}{1.23, 5.68}, values(got))
}

func TestLast(t *testing.T) {
	assert.Nil(t, Last(nil))
	got := SMA([]float64{1, 2, 3}, 2)
	require.NotNil(t, Last(got))
	assert.Equal(t, 2.5, *Last(got))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.67, Round2(38.0/3.0))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 100.0, Round2(100))
}
