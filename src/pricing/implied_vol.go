package pricing

import (
	"math"

	"github.com/jiaming2012/option-screener/src/models"
)

const (
	ivLowerBound     = 1e-4
	ivUpperBound     = 5.0
	ivUpperBoundCap  = 20.0
	ivExpansionSteps = 10
	ivPriceTolerance = 1e-4
	ivMaxIterations  = 100
)

// ImpliedVolatilityFromPrice backs sigma out of an option price by bisection.
// ok is false for non-positive inputs, or when the target cannot be bracketed.
func ImpliedVolatilityFromPrice(target, S, K, r, T float64, kind models.OptionType) (float64, bool) {
	if !validInputs(target, S, K, T) {
		return 0, false
	}

	lo, hi := ivLowerBound, ivUpperBound

	priceLo, ok := Price(kind, S, K, r, lo, T)
	if !ok || target < priceLo {
		return 0, false
	}

	priceHi, ok := Price(kind, S, K, r, hi, T)
	if !ok {
		return 0, false
	}

	for i := 0; i < ivExpansionSteps && target > priceHi && hi < ivUpperBoundCap; i++ {
		hi = math.Min(hi*2, ivUpperBoundCap)
		if priceHi, ok = Price(kind, S, K, r, hi, T); !ok {
			return 0, false
		}
	}

	if target > priceHi+ivPriceTolerance {
		return 0, false
	}

	for i := 0; i < ivMaxIterations; i++ {
		mid := 0.5 * (lo + hi)

		price, ok := Price(kind, S, K, r, mid, T)
		if !ok {
			return 0, false
		}

		if math.Abs(price-target) < ivPriceTolerance {
			return mid, true
		}

		if price < target {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 0.5 * (lo + hi), true
}
