package returns

import (
	"math"

	"github.com/jiaming2012/option-screener/src/models"
)

// CashSecuredCapital is the cash reserved against assignment of one short put.
func CashSecuredCapital(strike, premium float64, mode models.CapitalMode, multiplier float64) float64 {
	if !models.Positive(strike) {
		return 0
	}

	if mode == models.CapitalNet {
		if !models.Positive(premium) {
			premium = 0
		}

		return math.Max(strike-premium, 0) * multiplier
	}

	return strike * multiplier
}

// CoveredCallCapital is the cost of holding the shares one short call is written against.
func CoveredCallCapital(spot, multiplier float64) float64 {
	if !models.Positive(spot) {
		return 0
	}

	return spot * multiplier
}

// CapitalAtRisk picks the capital model for a single leg strategy by option type.
func CapitalAtRisk(kind models.OptionType, mode models.CapitalMode, strike, premium, spot, multiplier float64) float64 {
	if kind == models.Call {
		return CoveredCallCapital(spot, multiplier)
	}

	return CashSecuredCapital(strike, premium, mode, multiplier)
}

// SpreadCapital is the defined risk of a four leg structure.
func SpreadCapital(maxLoss, multiplier float64) float64 {
	if !models.Positive(maxLoss) {
		return 0
	}

	return maxLoss * multiplier
}
