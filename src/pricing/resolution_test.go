package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-screener/src/models"
)

func TestResolveMidAndProvenance(t *testing.T) {
	t.Run("two sided quote", func(t *testing.T) {
		mid, src, ok := ResolveMidAndProvenance(10, 12, 0)
		require.True(t, ok)
		assert.Equal(t, 11.0, mid)
		assert.Equal(t, models.PriceSourceBidAsk, src)
	})

	t.Run("ask only beats last", func(t *testing.T) {
		mid, src, ok := ResolveMidAndProvenance(0, 12, 11)
		require.True(t, ok)
		assert.Equal(t, 12.0, mid)
		assert.Equal(t, models.PriceSourceAsk, src)
	})

	t.Run("bid only", func(t *testing.T) {
		mid, src, ok := ResolveMidAndProvenance(3, 0, 11)
		require.True(t, ok)
		assert.Equal(t, 3.0, mid)
		assert.Equal(t, models.PriceSourceBid, src)
	})

	t.Run("last trade", func(t *testing.T) {
		mid, src, ok := ResolveMidAndProvenance(0, 0, 9)
		require.True(t, ok)
		assert.Equal(t, 9.0, mid)
		assert.Equal(t, models.PriceSourceLast, src)
	})

	t.Run("nothing usable", func(t *testing.T) {
		mid, src, ok := ResolveMidAndProvenance(0, -1, math.NaN())
		assert.False(t, ok)
		assert.True(t, math.IsNaN(mid))
		assert.Equal(t, models.PriceSourceUnknown, src)
	})
}

func TestSpread(t *testing.T) {
	s, ok := Spread(1.0, 1.2)
	require.True(t, ok)
	assert.InDelta(t, 0.2, s, 1e-12)

	s, ok = Spread(1.3, 1.2)
	require.True(t, ok)
	assert.Equal(t, 0.0, s)

	_, ok = Spread(0, 1.2)
	assert.False(t, ok)
}

func TestResolvePrice(t *testing.T) {
	T := 30.0 / 365

	t.Run("theoretical fallback uses quote volatility", func(t *testing.T) {
		res := ResolvePrice(PriceInputs{
			Kind: models.Put, Spot: 100, Strike: 100, RiskFreeRate: 0.05,
			ImpliedVol: 0.3, YearsToExpiration: T, FallbackVolatility: 0.4,
		})

		expected, ok := PutPrice(100, 100, 0.05, 0.3, T)
		require.True(t, ok)
		require.True(t, res.MidOK)
		assert.Equal(t, models.PriceSourceTheo, res.Source)
		assert.InDelta(t, expected, res.Mid, 1e-12)
		assert.InDelta(t, expected, res.Premium, 1e-12)
		assert.False(t, res.SpreadOK)
		assert.False(t, res.IVFromPriceOK)
		assert.Equal(t, 0.3, res.IV)
	})

	t.Run("theoretical fallback uses the volatility guess", func(t *testing.T) {
		res := ResolvePrice(PriceInputs{
			Kind: models.Call, Spot: 100, Strike: 105, RiskFreeRate: 0.05,
			YearsToExpiration: T, FallbackVolatility: 0.4,
		})

		expected, _ := CallPrice(100, 105, 0.05, 0.4, T)
		assert.Equal(t, models.PriceSourceTheo, res.Source)
		assert.InDelta(t, expected, res.Mid, 1e-12)
		require.True(t, res.IVOK)
		assert.InDelta(t, 0.4, res.IV, 1e-3)
	})

	t.Run("backfills volatility from the market price", func(t *testing.T) {
		price, _ := PutPrice(100, 95, 0.05, 0.25, T)
		res := ResolvePrice(PriceInputs{
			Kind: models.Put, Last: price, Spot: 100, Strike: 95, RiskFreeRate: 0.05,
			YearsToExpiration: T, FallbackVolatility: 0.4,
		})

		assert.Equal(t, models.PriceSourceLast, res.Source)
		require.True(t, res.IVFromPriceOK)
		assert.InDelta(t, 0.25, res.IVFromPrice, 1e-3)
		assert.Equal(t, res.IVFromPrice, res.IV)
	})

	t.Run("no spot leaves mid and volatility undefined", func(t *testing.T) {
		res := ResolvePrice(PriceInputs{
			Kind: models.Put, Spot: math.NaN(), Strike: 95, RiskFreeRate: 0.05,
			YearsToExpiration: T, FallbackVolatility: 0.4,
		})

		assert.False(t, res.MidOK)
		assert.Equal(t, models.PriceSourceUnknown, res.Source)
		assert.Equal(t, 0.0, res.Premium)
		assert.False(t, res.IVOK)
	})
}

func TestUsedPrice(t *testing.T) {
	assert.Equal(t, 1.1, UsedPrice(1.1, 2, 3, 1, 1.2))
	assert.Equal(t, 2.0, UsedPrice(math.NaN(), 2, 3, 0, 0))
	assert.Equal(t, 3.0, UsedPrice(0, 0, 3, 0, 0))
	assert.Equal(t, 0.7, UsedPrice(0, 0, math.NaN(), 0.5, 0.7))
	assert.Equal(t, 0.0, UsedPrice(0, 0, 0, 0, 0))
}

func TestDisplayPrices(t *testing.T) {
	t.Run("quote is shown as is", func(t *testing.T) {
		bid, ask, spread := DisplayPrices(1, 1.2, 0, models.Float64(1.1), models.Float64(0.2))
		assert.Equal(t, 1.0, *bid)
		assert.Equal(t, 1.2, *ask)
		assert.Equal(t, 0.2, *spread)
	})

	t.Run("falls back to last then mid", func(t *testing.T) {
		bid, ask, spread := DisplayPrices(0, 0, 0.8, models.Float64(0.9), nil)
		assert.Equal(t, 0.8, *bid)
		assert.Equal(t, 0.8, *ask)
		assert.Nil(t, spread)

		bid, _, _ = DisplayPrices(0, 0, 0, models.Float64(0.9), nil)
		assert.Equal(t, 0.9, *bid)

		bid, ask, _ = DisplayPrices(0, 0, 0, nil, nil)
		assert.Nil(t, bid)
		assert.Nil(t, ask)
	})
}
