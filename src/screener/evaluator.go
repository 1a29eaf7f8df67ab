package screener

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-screener/src/models"
	"github.com/jiaming2012/option-screener/src/pricing"
	"github.com/jiaming2012/option-screener/src/returns"
	"github.com/jiaming2012/option-screener/src/utils"
)

const (
	minYearsToExpiration = 1e-6
	minSigma             = 1e-6
)

// EvaluateChain enriches every row of one chain with prices, greeks, returns and
// criterion flags, and returns them ranked. An empty chain yields an empty result.
func EvaluateChain(rows []models.RawContractQuote, spot float64, expiration string, kind models.OptionType, params models.ScreeningParameters, now time.Time) []models.EvaluatedContract {
	if len(rows) == 0 {
		return []models.EvaluatedContract{}
	}

	days, err := utils.DaysToExpiration(expiration, now)
	if err != nil {
		days = params.DaysIfUnknown()
		log.Debugf("EvaluateChain: using %d days for expiration %q: %v", days, expiration, err)
	}

	results := make([]models.EvaluatedContract, 0, len(rows))
	for _, row := range rows {
		results = append(results, evaluateContract(row, spot, expiration, days, kind, params))
	}

	SortContracts(results)

	return results
}

func evaluateContract(row models.RawContractQuote, spot float64, expiration string, days int, kind models.OptionType, params models.ScreeningParameters) models.EvaluatedContract {
	T := math.Max(minYearsToExpiration, float64(days)/returns.DaysPerYear)
	r := params.RiskFreeRate

	price := pricing.ResolvePrice(pricing.PriceInputs{
		Kind:               kind,
		Bid:                row.Bid,
		Ask:                row.Ask,
		Last:               row.LastPrice,
		ImpliedVol:         row.ImpliedVol,
		Spot:               spot,
		Strike:             row.Strike,
		RiskFreeRate:       r,
		YearsToExpiration:  T,
		FallbackVolatility: params.VolatilityGuess(),
	})

	c := models.EvaluatedContract{
		RawContractQuote: row,
		OptionType:       kind,
		Expiration:       expiration,
		DaysToExpiration: days,
		PriceSource:      price.Source,
		Premium:          price.Premium,
	}

	if price.MidOK {
		c.Mid = models.Float64(price.Mid)
	}

	if price.SpreadOK {
		c.Spread = models.Float64(price.Spread)
	}

	if price.TheoOK {
		c.TheoreticalPrice = models.Float64(price.Theo)
	}

	if price.IVFromPriceOK {
		c.IVFromPrice = models.Float64(price.IVFromPrice)
	}

	sigma := math.NaN()
	if price.IVOK {
		c.IV = models.Float64(price.IV)
		sigma = math.Max(price.IV, minSigma)
	}

	delta, deltaOK := pricing.Delta(kind, spot, row.Strike, r, sigma, T)

	// stale feeds report a zero delta for contracts nobody is quoting
	if deltaOK && delta == 0 && !models.Positive(row.Bid) && !models.Positive(row.Ask) {
		deltaOK = false
	}

	if deltaOK {
		c.Delta = models.Float64(delta)
		c.AbsDelta = models.Float64(math.Abs(delta))
	}

	itm, itmOK := pricing.ITMProbability(kind, spot, row.Strike, r, sigma, T)
	if itmOK {
		c.ITMProbability = models.Float64(itm)
	}

	switch {
	case deltaOK && delta != 0:
		c.AssignmentProbability = models.Float64(math.Abs(delta))
	case itmOK && itm > 0:
		c.AssignmentProbability = models.Float64(itm)
	case deltaOK:
		c.AssignmentProbability = models.Float64(0)
	}

	multiplier := params.Multiplier()
	c.CapitalAtRisk = returns.CapitalAtRisk(kind, params.Capital(), row.Strike, c.Premium, spot, multiplier)
	c.SingleReturn = returns.SingleReturn(c.Premium, c.CapitalAtRisk, multiplier)
	c.AnnualizedReturn = returns.AnnualizedReturn(c.Premium, c.CapitalAtRisk, days, multiplier)

	if models.Positive(spot) {
		distance := (spot - row.Strike) / spot * 100
		if kind == models.Call {
			distance = -distance
		}

		c.OTMDistancePct = models.Float64(distance)
	}

	c.OKDelta = c.AbsDelta != nil && *c.AbsDelta <= params.DeltaHigh
	modelable := models.Positive(spot) && models.Positive(row.Strike)

	c.OKIV = modelable && c.IV != nil && *c.IV >= params.IVMin && *c.IV <= params.IVMax
	c.OKSpread = c.Spread == nil || *c.Spread <= params.MaxSpread
	c.OKVolume = row.Volume >= params.MinVolume
	c.OKAnnual = c.CapitalAtRisk > 0 && c.AnnualizedReturn >= params.MinAnnualReturn
	c.OKPrice = c.PriceSource.IsMarket() && c.Mid != nil && *c.Mid > 0
	c.OKAll = c.OKDelta && c.OKIV && c.OKSpread && c.OKVolume && c.OKAnnual
	if params.StrictQuotes {
		c.OKAll = c.OKAll && c.OKPrice
	}

	c.BidDisplay, c.AskDisplay, c.SpreadDisplay = pricing.DisplayPrices(row.Bid, row.Ask, row.LastPrice, c.Mid, c.Spread)

	return c
}
