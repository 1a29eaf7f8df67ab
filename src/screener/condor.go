package screener

import (
	"sort"

	"github.com/jiaming2012/option-screener/src/models"
)

// SelectCondorCandidates ranks the short leg candidates of one side of an iron condor.
//
// Out-of-the-money contracts inside the short delta band are preferred. Without any,
// every out-of-the-money contract qualifies, and failing that the single contract
// closest to spot. Candidates are ranked by premium, richest first, with ties going
// to the strike closer to spot.
func SelectCondorCandidates(contracts []models.EvaluatedContract, spot float64, kind models.OptionType, params models.ScreeningParameters) []models.EvaluatedContract {
	if len(contracts) == 0 || !models.Positive(spot) {
		return nil
	}

	sorted := sortedByStrike(contracts)

	var banded, otm []models.EvaluatedContract
	for _, c := range sorted {
		if kind == models.Put && !(c.Strike < spot) || kind == models.Call && !(c.Strike > spot) {
			continue
		}

		otm = append(otm, c)

		if c.AbsDelta != nil && *c.AbsDelta >= params.ShortDeltaLow && *c.AbsDelta <= params.ShortDeltaHigh {
			banded = append(banded, c)
		}
	}

	candidates := banded
	if len(candidates) == 0 {
		candidates = otm
	}

	if len(candidates) == 0 {
		nearest, _ := nearestContract(sorted, spot)
		candidates = []models.EvaluatedContract{nearest}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		pa, pb := UsedPremium(a), UsedPremium(b)
		if pa != pb {
			return pa > pb
		}

		if kind == models.Put {
			return a.Strike > b.Strike
		}

		return a.Strike < b.Strike
	})

	if k := params.CandidateCount(); len(candidates) > k {
		candidates = candidates[:k]
	}

	return candidates
}

// BuildIronCondors pairs every put candidate with every call candidate above it and
// buys wings at each configured width. Pairs are visited put-major in rank order.
// Structures are not filtered on minimum credit here.
func BuildIronCondors(calls, puts []models.EvaluatedContract, spot float64, params models.ScreeningParameters) []models.WingedSpread {
	spreads := []models.WingedSpread{}
	if len(calls) == 0 || len(puts) == 0 || !models.Positive(spot) {
		return spreads
	}

	putCandidates := SelectCondorCandidates(puts, spot, models.Put, params)
	callCandidates := SelectCondorCandidates(calls, spot, models.Call, params)
	calls, puts = sortedByStrike(calls), sortedByStrike(puts)
	widths := ParseWingWidths(params.WingWidths)

	seen := make(map[[4]float64]bool)

	for _, shortPut := range putCandidates {
		for _, shortCall := range callCandidates {
			if !(shortPut.Strike < shortCall.Strike) {
				continue
			}

			for _, w := range widths {
				longPut, _ := nearestContract(puts, shortPut.Strike-w)
				longCall, _ := nearestContract(calls, shortCall.Strike+w)

				key := [4]float64{shortPut.Strike, shortCall.Strike, longPut.Strike, longCall.Strike}
				if seen[key] {
					continue
				}
				seen[key] = true

				spread, ok := NewWingedSpread(WingedSpreadInput{
					Kind:        models.IronCondor,
					Ticker:      shortPut.Ticker,
					Expiration:  shortPut.Expiration,
					DTE:         shortPut.DaysToExpiration,
					ShortPut:    NewLeg(shortPut, models.ShortPut),
					ShortCall:   NewLeg(shortCall, models.ShortCall),
					LongPut:     NewLeg(longPut, models.LongPut),
					LongCall:    NewLeg(longCall, models.LongCall),
					WingWidth:   w,
					BreakevenLo: shortPut.Strike,
					BreakevenHi: shortCall.Strike,
				}, params)
				if !ok {
					continue
				}

				spreads = append(spreads, spread)
			}
		}
	}

	return spreads
}
