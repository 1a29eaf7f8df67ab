package pricing

import (
	"math"

	"github.com/jiaming2012/option-screener/src/models"
)

// ResolveMidAndProvenance picks a working price from the quote. A value of zero
// counts as no quote. ok is false only when bid, ask and last are all unusable.
func ResolveMidAndProvenance(bid, ask, last float64) (float64, models.PriceSource, bool) {
	hasBid, hasAsk := models.Positive(bid), models.Positive(ask)

	switch {
	case hasBid && hasAsk:
		return (bid + ask) / 2, models.PriceSourceBidAsk, true
	case hasBid:
		return bid, models.PriceSourceBid, true
	case hasAsk:
		return ask, models.PriceSourceAsk, true
	case models.Positive(last):
		return last, models.PriceSourceLast, true
	}

	return math.NaN(), models.PriceSourceUnknown, false
}

// Spread is ask minus bid, floored at zero. It is only known for a two sided quote.
func Spread(bid, ask float64) (float64, bool) {
	if !models.Positive(bid) || !models.Positive(ask) {
		return 0, false
	}

	return math.Max(ask-bid, 0), true
}

type PriceInputs struct {
	Kind               models.OptionType
	Bid                float64
	Ask                float64
	Last               float64
	ImpliedVol         float64
	Spot               float64
	Strike             float64
	RiskFreeRate       float64
	YearsToExpiration  float64
	FallbackVolatility float64
}

// PriceResolution carries every price derived for one contract. Each value is
// paired with a flag telling whether it is defined.
type PriceResolution struct {
	Mid           float64
	MidOK         bool
	Source        models.PriceSource
	Premium       float64
	Spread        float64
	SpreadOK      bool
	Theo          float64
	TheoOK        bool
	IV            float64
	IVOK          bool
	IVFromPrice   float64
	IVFromPriceOK bool
}

// ResolvePrice resolves the market price, falls back to a theoretical price when the
// market offers nothing, and backfills implied volatility from the resolved premium.
func ResolvePrice(in PriceInputs) PriceResolution {
	var out PriceResolution

	out.Mid, out.Source, out.MidOK = ResolveMidAndProvenance(in.Bid, in.Ask, in.Last)
	out.Spread, out.SpreadOK = Spread(in.Bid, in.Ask)

	guess := in.FallbackVolatility
	if models.Positive(in.ImpliedVol) {
		guess = in.ImpliedVol
	}

	if theo, ok := Price(in.Kind, in.Spot, in.Strike, in.RiskFreeRate, guess, in.YearsToExpiration); ok && models.Positive(theo) {
		out.Theo, out.TheoOK = theo, true
	}

	if !out.MidOK && out.TheoOK {
		out.Mid, out.Source, out.MidOK = out.Theo, models.PriceSourceTheo, true
	}

	if out.MidOK && models.Positive(out.Mid) {
		out.Premium = out.Mid
	}

	if models.Positive(in.ImpliedVol) {
		out.IV, out.IVOK = in.ImpliedVol, true
	} else if out.Premium > 0 && models.Positive(in.Spot) {
		if iv, ok := ImpliedVolatilityFromPrice(out.Premium, in.Spot, in.Strike, in.RiskFreeRate, in.YearsToExpiration, in.Kind); ok && iv > 0 {
			out.IVFromPrice, out.IVFromPriceOK = iv, true
			out.IV, out.IVOK = iv, true
		}
	}

	return out
}

// UsedPrice is the premium a spread leg is priced at: mid, then last, then the
// theoretical price, then the larger side of the raw quote.
func UsedPrice(mid, last, theo, bid, ask float64) float64 {
	for _, v := range []float64{mid, last, theo} {
		if models.Positive(v) {
			return v
		}
	}

	used := 0.0
	for _, v := range []float64{bid, ask} {
		if models.Positive(v) && v > used {
			used = v
		}
	}

	return used
}

// DisplayPrices fills bid and ask for rendering: the quote itself, else last, else mid.
func DisplayPrices(bid, ask, last float64, mid, spread *float64) (bidDisplay, askDisplay, spreadDisplay *float64) {
	fallback := func(v float64) *float64 {
		if models.Positive(v) {
			return models.Float64(v)
		}

		if models.Positive(last) {
			return models.Float64(last)
		}

		if mid != nil && models.Positive(*mid) {
			return models.Float64(*mid)
		}

		return nil
	}

	if spread != nil {
		spreadDisplay = models.Float64(*spread)
	}

	return fallback(bid), fallback(ask), spreadDisplay
}
