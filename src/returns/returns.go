package returns

import (
	"math"

	"github.com/jiaming2012/option-screener/src/models"
)

const DaysPerYear = 365.0

func SingleReturn(premium, capital, multiplier float64) float64 {
	if !models.Positive(capital) || !models.Positive(premium) {
		return 0
	}

	return premium * multiplier / capital
}

func AnnualizedReturn(premium, capital float64, days int, multiplier float64) float64 {
	if days <= 0 {
		return 0
	}

	return Annualize(SingleReturn(premium, capital, multiplier), days)
}

// Annualize scales a holding period return to a year, counting at least one day.
func Annualize(periodReturn float64, days int) float64 {
	if days < 1 {
		days = 1
	}

	return periodReturn * DaysPerYear / float64(days)
}

// ReturnOnRisk is credit over the loss taken if the structure finishes at max loss.
func ReturnOnRisk(credit, wingWidth float64) float64 {
	return credit / math.Max(1e-9, wingWidth-credit)
}
