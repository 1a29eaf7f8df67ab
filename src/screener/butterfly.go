package screener

import (
	"math"

	"github.com/jiaming2012/option-screener/src/models"
)

// BuildIronButterflies sells a call and a put at one strike near spot plus the
// configured offset, and buys wings at each configured width. Structures are not
// filtered on minimum credit here.
func BuildIronButterflies(calls, puts []models.EvaluatedContract, spot float64, params models.ScreeningParameters) []models.WingedSpread {
	spreads := []models.WingedSpread{}
	if len(calls) == 0 || len(puts) == 0 || !models.Positive(spot) {
		return spreads
	}

	calls, puts = sortedByStrike(calls), sortedByStrike(puts)
	target := spot + params.StrikeOffset

	nearestCall, _ := nearestContract(calls, target)
	nearestPut, _ := nearestContract(puts, target)

	K := nearestCall.Strike
	if math.Abs(nearestPut.Strike-target) < math.Abs(nearestCall.Strike-target) {
		K = nearestPut.Strike
	}

	shortCall, _ := nearestContract(calls, K)
	shortPut, _ := nearestContract(puts, K)

	seen := make(map[[4]float64]bool)

	for _, w := range ParseWingWidths(params.WingWidths) {
		longCall, _ := nearestContract(calls, K+w)
		longPut, _ := nearestContract(puts, K-w)

		key := [4]float64{shortPut.Strike, shortCall.Strike, longPut.Strike, longCall.Strike}
		if seen[key] {
			continue
		}
		seen[key] = true

		spread, ok := NewWingedSpread(WingedSpreadInput{
			Kind:        models.IronButterfly,
			Ticker:      shortCall.Ticker,
			Expiration:  shortCall.Expiration,
			DTE:         shortCall.DaysToExpiration,
			ShortPut:    NewLeg(shortPut, models.ShortPut),
			ShortCall:   NewLeg(shortCall, models.ShortCall),
			LongPut:     NewLeg(longPut, models.LongPut),
			LongCall:    NewLeg(longCall, models.LongCall),
			WingWidth:   w,
			BreakevenLo: K,
			BreakevenHi: K,
		}, params)
		if !ok {
			continue
		}

		spreads = append(spreads, spread)
	}

	return spreads
}
