package screener

import (
	"github.com/jiaming2012/option-screener/src/models"
)

const creditEpsilon = 1e-9

// FilterContracts keeps passing rows (or every row when includeRejected is set) that
// also satisfy the out-of-the-money, premium and strike distance filters.
func FilterContracts(contracts []models.EvaluatedContract, spot float64, params models.ScreeningParameters, includeRejected bool) []models.EvaluatedContract {
	filtered := make([]models.EvaluatedContract, 0, len(contracts))

	for _, c := range contracts {
		if !includeRejected && !c.OKAll {
			continue
		}

		if params.OnlyOTM && !isOTM(c, spot) {
			continue
		}

		if params.MinPremium > 0 && c.Premium < params.MinPremium {
			continue
		}

		if params.MinOTMDistancePct > 0 && (c.OTMDistancePct == nil || *c.OTMDistancePct < params.MinOTMDistancePct) {
			continue
		}

		filtered = append(filtered, c)
	}

	return filtered
}

func isOTM(c models.EvaluatedContract, spot float64) bool {
	if !models.Positive(spot) {
		return false
	}

	if c.OptionType == models.Call {
		return c.Strike >= spot
	}

	return c.Strike <= spot
}

// FilterMinCredit drops structures collecting less than the minimum credit.
func FilterMinCredit(spreads []models.WingedSpread, minCredit float64) []models.WingedSpread {
	filtered := make([]models.WingedSpread, 0, len(spreads))
	for _, s := range spreads {
		if s.NetCredit+creditEpsilon >= minCredit {
			filtered = append(filtered, s)
		}
	}

	return filtered
}
