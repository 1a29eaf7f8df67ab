package screener

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-screener/src/models"
)

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func scenarioParams() models.ScreeningParameters {
	params := models.DefaultScreeningParameters()
	params.DeltaHigh = 0.35
	params.IVMin = 0
	params.IVMax = 1.2
	params.MaxSpread = 0.30
	params.MinVolume = 100
	params.MinAnnualReturn = 0.05
	params.CapitalMode = models.CapitalConservative

	return params
}

func scenarioRow() models.RawContractQuote {
	return models.RawContractQuote{
		ContractSymbol: "XYZ240131P00095000",
		Ticker:         "XYZ",
		Strike:         95,
		Bid:            1.00,
		Ask:            1.20,
		ImpliedVol:     0.30,
		Volume:         500,
		OpenInterest:   1000,
	}
}

func TestEvaluateChain(t *testing.T) {
	t.Run("single put end to end", func(t *testing.T) {
		results := EvaluateChain([]models.RawContractQuote{scenarioRow()}, 100, "2024-01-31", models.Put, scenarioParams(), testNow)
		require.Len(t, results, 1)

		c := results[0]
		assert.Equal(t, 30, c.DaysToExpiration)
		require.NotNil(t, c.Mid)
		assert.InDelta(t, 1.10, *c.Mid, 1e-12)
		assert.Equal(t, models.PriceSourceBidAsk, c.PriceSource)
		require.NotNil(t, c.Spread)
		assert.InDelta(t, 0.20, *c.Spread, 1e-12)
		assert.Equal(t, 9500.0, c.CapitalAtRisk)
		assert.InDelta(t, 1.10*100/9500, c.SingleReturn, 1e-12)
		assert.InDelta(t, 0.1409, c.AnnualizedReturn, 1e-4)

		require.NotNil(t, c.Delta)
		assert.Less(t, *c.Delta, 0.0)
		require.NotNil(t, c.AbsDelta)
		assert.InDelta(t, 0.246, *c.AbsDelta, 2e-3)
		assert.Equal(t, *c.AbsDelta, *c.AssignmentProbability)
		require.NotNil(t, c.ITMProbability)
		assert.Greater(t, *c.ITMProbability, 0.0)

		assert.True(t, c.OKDelta)
		assert.True(t, c.OKIV)
		assert.True(t, c.OKSpread)
		assert.True(t, c.OKVolume)
		assert.True(t, c.OKAnnual)
		assert.True(t, c.OKPrice)
		assert.True(t, c.OKAll)

		require.NotNil(t, c.OTMDistancePct)
		assert.InDelta(t, 5.0, *c.OTMDistancePct, 1e-12)
		assert.Equal(t, 1.0, *c.BidDisplay)
		assert.Equal(t, 1.2, *c.AskDisplay)
	})

	t.Run("empty chain", func(t *testing.T) {
		results := EvaluateChain(nil, 100, "2024-01-31", models.Put, scenarioParams(), testNow)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("degenerate strike fails closed", func(t *testing.T) {
		row := scenarioRow()
		row.Strike = 0

		results := EvaluateChain([]models.RawContractQuote{row}, 100, "2024-01-31", models.Put, scenarioParams(), testNow)
		require.Len(t, results, 1)

		c := results[0]
		assert.Nil(t, c.Delta)
		assert.Nil(t, c.ITMProbability)
		assert.Nil(t, c.AssignmentProbability)
		assert.False(t, c.OKDelta)
		assert.False(t, c.OKIV)
		assert.False(t, c.OKAll)
		assert.Equal(t, 0.0, c.CapitalAtRisk)
	})

	t.Run("missing spot fails closed", func(t *testing.T) {
		results := EvaluateChain([]models.RawContractQuote{scenarioRow()}, 0, "2024-01-31", models.Put, scenarioParams(), testNow)
		require.Len(t, results, 1)
		assert.Nil(t, results[0].Delta)
		assert.Nil(t, results[0].OTMDistancePct)
		assert.False(t, results[0].OKAll)
	})

	t.Run("unparsable expiration uses default days", func(t *testing.T) {
		params := scenarioParams()
		params.DefaultDaysIfUnknown = 45

		results := EvaluateChain([]models.RawContractQuote{scenarioRow()}, 100, "manual", models.Put, params, testNow)
		require.Len(t, results, 1)
		assert.Equal(t, 45, results[0].DaysToExpiration)
	})

	t.Run("theoretical price and strict quotes", func(t *testing.T) {
		row := scenarioRow()
		row.Bid, row.Ask = 0, 0

		results := EvaluateChain([]models.RawContractQuote{row}, 100, "2024-01-31", models.Put, scenarioParams(), testNow)
		require.Len(t, results, 1)

		c := results[0]
		assert.Equal(t, models.PriceSourceTheo, c.PriceSource)
		require.NotNil(t, c.Mid)
		assert.Equal(t, *c.TheoreticalPrice, *c.Mid)
		assert.Nil(t, c.Spread)
		assert.True(t, c.OKSpread)
		assert.False(t, c.OKPrice)
		assert.True(t, c.OKAll)
		assert.Equal(t, *c.Mid, *c.BidDisplay)

		params := scenarioParams()
		params.StrictQuotes = true

		results = EvaluateChain([]models.RawContractQuote{row}, 100, "2024-01-31", models.Put, params, testNow)
		assert.False(t, results[0].OKAll)
	})

	t.Run("backfills implied volatility", func(t *testing.T) {
		row := scenarioRow()
		row.ImpliedVol = 0

		results := EvaluateChain([]models.RawContractQuote{row}, 100, "2024-01-31", models.Put, scenarioParams(), testNow)
		c := results[0]
		require.NotNil(t, c.IVFromPrice)
		require.NotNil(t, c.IV)
		assert.Equal(t, *c.IVFromPrice, *c.IV)
		assert.Greater(t, *c.IV, 0.2)
		assert.Less(t, *c.IV, 0.35)
		assert.NotNil(t, c.Delta)
	})

	t.Run("zero delta without a quote is treated as missing", func(t *testing.T) {
		row := models.RawContractQuote{Strike: 50, LastPrice: 0.01, ImpliedVol: 0.05, Volume: 500}

		results := EvaluateChain([]models.RawContractQuote{row}, 100, "2024-01-31", models.Put, scenarioParams(), testNow)
		c := results[0]
		assert.Nil(t, c.Delta)
		assert.Nil(t, c.AssignmentProbability)
		assert.False(t, c.OKDelta)

		row.Bid = 0.01
		results = EvaluateChain([]models.RawContractQuote{row}, 100, "2024-01-31", models.Put, scenarioParams(), testNow)
		c = results[0]
		require.NotNil(t, c.AbsDelta)
		assert.Equal(t, 0.0, *c.AbsDelta)
		require.NotNil(t, c.AssignmentProbability)
		assert.Equal(t, 0.0, *c.AssignmentProbability)
		assert.True(t, c.OKDelta)
	})

	t.Run("net capital mode", func(t *testing.T) {
		params := scenarioParams()
		params.CapitalMode = models.CapitalNet

		results := EvaluateChain([]models.RawContractQuote{scenarioRow()}, 100, "2024-01-31", models.Put, params, testNow)
		assert.InDelta(t, (95-1.10)*100, results[0].CapitalAtRisk, 1e-9)
	})

	t.Run("covered call", func(t *testing.T) {
		row := scenarioRow()
		row.Strike = 105

		results := EvaluateChain([]models.RawContractQuote{row}, 100, "2024-01-31", models.Call, scenarioParams(), testNow)
		c := results[0]
		assert.Equal(t, 10000.0, c.CapitalAtRisk)
		require.NotNil(t, c.Delta)
		assert.Greater(t, *c.Delta, 0.0)
		assert.InDelta(t, 5.0, *c.OTMDistancePct, 1e-12)
	})

	t.Run("rows are ranked", func(t *testing.T) {
		low := scenarioRow()
		low.ContractSymbol = "low-volume"
		low.Volume = 10

		rich := scenarioRow()
		rich.ContractSymbol = "rich"
		rich.Bid, rich.Ask = 1.5, 1.7

		results := EvaluateChain([]models.RawContractQuote{low, scenarioRow(), rich}, 100, "2024-01-31", models.Put, scenarioParams(), testNow)
		require.Len(t, results, 3)
		assert.Equal(t, "rich", results[0].ContractSymbol)
		assert.Equal(t, scenarioRow().ContractSymbol, results[1].ContractSymbol)
		assert.Equal(t, "low-volume", results[2].ContractSymbol)
		assert.False(t, results[2].OKAll)
	})
}

func TestSortContracts(t *testing.T) {
	contracts := []models.EvaluatedContract{
		{RawContractQuote: models.RawContractQuote{ContractSymbol: "no-spread", Volume: 100}, AnnualizedReturn: 0.2, OKAll: true},
		{RawContractQuote: models.RawContractQuote{ContractSymbol: "failed", Volume: 900}, AnnualizedReturn: 0.9},
		{RawContractQuote: models.RawContractQuote{ContractSymbol: "tight", Volume: 100}, AnnualizedReturn: 0.2, OKAll: true, Spread: models.Float64(0.05)},
		{RawContractQuote: models.RawContractQuote{ContractSymbol: "busy", Volume: 300}, AnnualizedReturn: 0.2, OKAll: true, Spread: models.Float64(0.5)},
		{RawContractQuote: models.RawContractQuote{ContractSymbol: "best", Volume: 1}, AnnualizedReturn: 0.3, OKAll: true},
	}

	SortContracts(contracts)

	var order []string
	for _, c := range contracts {
		order = append(order, c.ContractSymbol)
	}

	assert.Equal(t, []string{"best", "busy", "tight", "no-spread", "failed"}, order)
}

func TestFilterContracts(t *testing.T) {
	put := func(symbol string, strike, premium float64, ok bool) models.EvaluatedContract {
		distance := (100 - strike)
		return models.EvaluatedContract{
			RawContractQuote: models.RawContractQuote{ContractSymbol: symbol, Strike: strike},
			OptionType:       models.Put,
			Premium:          premium,
			OTMDistancePct:   models.Float64(distance),
			OKAll:            ok,
		}
	}

	contracts := []models.EvaluatedContract{
		put("otm", 95, 1.0, true),
		put("itm", 105, 6.0, true),
		put("cheap", 90, 0.2, true),
		put("rejected", 92, 1.0, false),
	}

	symbols := func(cs []models.EvaluatedContract) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.ContractSymbol)
		}
		return out
	}

	t.Run("passing rows only", func(t *testing.T) {
		filtered := FilterContracts(contracts, 100, models.ScreeningParameters{}, false)
		assert.Equal(t, []string{"otm", "itm", "cheap"}, symbols(filtered))
	})

	t.Run("include rejected", func(t *testing.T) {
		filtered := FilterContracts(contracts, 100, models.ScreeningParameters{}, true)
		assert.Len(t, filtered, 4)
	})

	t.Run("post filters", func(t *testing.T) {
		params := models.ScreeningParameters{OnlyOTM: true, MinPremium: 0.5}
		assert.Equal(t, []string{"otm"}, symbols(FilterContracts(contracts, 100, params, false)))

		params = models.ScreeningParameters{MinOTMDistancePct: 7}
		assert.Equal(t, []string{"cheap"}, symbols(FilterContracts(contracts, 100, params, false)))
	})

	t.Run("only otm without spot keeps nothing", func(t *testing.T) {
		assert.Empty(t, FilterContracts(contracts, 0, models.ScreeningParameters{OnlyOTM: true}, false))
	})
}
