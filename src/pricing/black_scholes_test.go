package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-screener/src/models"
)

type bsInput struct {
	S, K, r, sigma, T float64
}

func sampleInputs() []bsInput {
	var inputs []bsInput
	for _, S := range []float64{20, 95, 100, 250} {
		for _, K := range []float64{15, 90, 100, 300} {
			for _, sigma := range []float64{0.05, 0.3, 1.2, 4} {
				for _, T := range []float64{1.0 / 365, 30.0 / 365, 2} {
					inputs = append(inputs, bsInput{S, K, 0.05, sigma, T})
				}
			}
		}
	}

	return inputs
}

func TestNormCDF(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		assert.InDelta(t, 0.5, NormCDF(0), 1e-15)
		assert.InDelta(t, 0.9750021048517795, NormCDF(1.96), 1e-10)
		assert.InDelta(t, 0.15865525393145707, NormCDF(-1), 1e-10)
	})

	t.Run("symmetry and bounds", func(t *testing.T) {
		for x := -6.0; x <= 6.0; x += 0.25 {
			v := NormCDF(x)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			assert.InDelta(t, 1.0, v+NormCDF(-x), 1e-12)
		}
	})
}

func TestDelta(t *testing.T) {
	t.Run("put and call delta bounds and parity", func(t *testing.T) {
		for _, in := range sampleInputs() {
			put, ok := PutDelta(in.S, in.K, in.r, in.sigma, in.T)
			require.True(t, ok)
			call, ok := CallDelta(in.S, in.K, in.r, in.sigma, in.T)
			require.True(t, ok)

			assert.GreaterOrEqual(t, put, -1.0)
			assert.LessOrEqual(t, put, 0.0)
			assert.GreaterOrEqual(t, call, 0.0)
			assert.LessOrEqual(t, call, 1.0)
			assert.InDelta(t, 1.0, call-put, 1e-9)
		}
	})

	t.Run("dispatch by option type", func(t *testing.T) {
		put, _ := Delta(models.Put, 100, 95, 0.05, 0.3, 0.1)
		call, _ := Delta(models.Call, 100, 95, 0.05, 0.3, 0.1)
		assert.Less(t, put, 0.0)
		assert.Greater(t, call, 0.5)
	})
}

func TestITMProbability(t *testing.T) {
	for _, in := range sampleInputs() {
		put, ok := ITMProbabilityPut(in.S, in.K, in.r, in.sigma, in.T)
		require.True(t, ok)
		call, ok := ITMProbabilityCall(in.S, in.K, in.r, in.sigma, in.T)
		require.True(t, ok)

		assert.GreaterOrEqual(t, put, 0.0)
		assert.LessOrEqual(t, put, 1.0)
		assert.GreaterOrEqual(t, call, 0.0)
		assert.LessOrEqual(t, call, 1.0)
		assert.InDelta(t, 1.0, put+call, 1e-9)
	}
}

func TestPrices(t *testing.T) {
	t.Run("put call parity", func(t *testing.T) {
		for _, in := range sampleInputs() {
			call, ok := CallPrice(in.S, in.K, in.r, in.sigma, in.T)
			require.True(t, ok)
			put, ok := PutPrice(in.S, in.K, in.r, in.sigma, in.T)
			require.True(t, ok)

			assert.InDelta(t, in.S-in.K*math.Exp(-in.r*in.T), call-put, 1e-8)
		}
	})

	t.Run("at the money reference value", func(t *testing.T) {
		call, ok := CallPrice(100, 100, 0.05, 0.2, 1)
		require.True(t, ok)
		assert.InDelta(t, 10.4506, call, 1e-4)

		put, ok := PutPrice(100, 100, 0.05, 0.2, 1)
		require.True(t, ok)
		assert.InDelta(t, 5.5735, put, 1e-4)
	})
}

func TestDegenerateInputs(t *testing.T) {
	cases := []struct {
		name string
		in   bsInput
	}{
		{"zero spot", bsInput{0, 100, 0.05, 0.3, 0.1}},
		{"zero strike", bsInput{100, 0, 0.05, 0.3, 0.1}},
		{"zero volatility", bsInput{100, 100, 0.05, 0, 0.1}},
		{"zero time", bsInput{100, 100, 0.05, 0.3, 0}},
		{"negative spot", bsInput{-5, 100, 0.05, 0.3, 0.1}},
		{"nan volatility", bsInput{100, 100, 0.05, math.NaN(), 0.1}},
		{"infinite spot", bsInput{math.Inf(1), 100, 0.05, 0.3, 0.1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in

			_, _, ok := D1D2(in.S, in.K, in.r, in.sigma, in.T)
			assert.False(t, ok)

			_, ok = PutPrice(in.S, in.K, in.r, in.sigma, in.T)
			assert.False(t, ok)
			_, ok = CallPrice(in.S, in.K, in.r, in.sigma, in.T)
			assert.False(t, ok)
			_, ok = PutDelta(in.S, in.K, in.r, in.sigma, in.T)
			assert.False(t, ok)
			_, ok = CallDelta(in.S, in.K, in.r, in.sigma, in.T)
			assert.False(t, ok)
			_, ok = ITMProbabilityPut(in.S, in.K, in.r, in.sigma, in.T)
			assert.False(t, ok)
			_, ok = ITMProbabilityCall(in.S, in.K, in.r, in.sigma, in.T)
			assert.False(t, ok)
		})
	}
}
