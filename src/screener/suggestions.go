package screener

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/option-screener/src/models"
)

const (
	CriterionDelta        = "delta_high"
	CriterionIVMin        = "iv_min"
	CriterionIVMax        = "iv_max"
	CriterionSpread       = "max_spread"
	CriterionVolume       = "min_volume"
	CriterionAnnualReturn = "min_annual_return"
	CriterionStrictQuotes = "strict_quotes"
	CriterionMinCredit    = "min_credit"
)

const (
	singleLegAdvice = "Filters look too strict. Try Min Annualized 5-10%, Max Spread $0.30-$0.50, Min Volume 20-50, and/or Max |Delta| up to 0.40."
	spreadAdvice    = "Try wider wings, lower min credit, or looser liquidity hints."
)

// SuggestRelaxations proposes, for each single criterion, the threshold that would
// admit the rows failing only that criterion. It always ends with general advice.
func SuggestRelaxations(strategy models.Strategy, params models.ScreeningParameters, contracts []models.EvaluatedContract, spreads []models.WingedSpread) []models.Suggestion {
	var suggestions []models.Suggestion

	if strategy.IsSpread() {
		if s, ok := suggestMinCredit(params, spreads); ok {
			suggestions = append(suggestions, s)
		}

		return append(suggestions, models.Suggestion{Text: spreadAdvice})
	}

	blocked := blockedByOnly(contracts, params)

	if rows := blocked[CriterionDelta]; len(rows) > 0 {
		values := collect(rows, func(c models.EvaluatedContract) *float64 { return c.AbsDelta })
		if v, err := stats.Max(values); err == nil {
			suggestions = append(suggestions, newSuggestion(CriterionDelta, params.DeltaHigh, ceilTo(v, 2), len(rows), "Raise Max |Delta| to %.2f"))
		}
	}

	if rows := blocked[CriterionIVMax]; len(rows) > 0 {
		values := collect(rows, func(c models.EvaluatedContract) *float64 { return c.IV })
		if v, err := stats.Max(values); err == nil {
			suggestions = append(suggestions, newSuggestion(CriterionIVMax, params.IVMax, ceilTo(v, 2), len(rows), "Raise Max IV to %.2f"))
		}
	}

	if rows := blocked[CriterionIVMin]; len(rows) > 0 {
		values := collect(rows, func(c models.EvaluatedContract) *float64 { return c.IV })
		if v, err := stats.Min(values); err == nil {
			suggestions = append(suggestions, newSuggestion(CriterionIVMin, params.IVMin, floorTo(v, 2), len(rows), "Lower Min IV to %.2f"))
		}
	}

	if rows := blocked[CriterionSpread]; len(rows) > 0 {
		values := collect(rows, func(c models.EvaluatedContract) *float64 { return c.Spread })
		if v, err := stats.Max(values); err == nil {
			suggestions = append(suggestions, newSuggestion(CriterionSpread, params.MaxSpread, ceilTo(v, 2), len(rows), "Raise Max Spread to $%.2f"))
		}
	}

	if rows := blocked[CriterionVolume]; len(rows) > 0 {
		values := collect(rows, func(c models.EvaluatedContract) *float64 { return models.Float64(float64(c.Volume)) })
		if v, err := stats.Min(values); err == nil {
			suggestions = append(suggestions, newSuggestion(CriterionVolume, float64(params.MinVolume), math.Floor(v), len(rows), "Lower Min Volume to %.0f"))
		}
	}

	if rows := blocked[CriterionAnnualReturn]; len(rows) > 0 {
		values := collect(rows, func(c models.EvaluatedContract) *float64 { return models.Float64(c.AnnualizedReturn) })
		if v, err := stats.Min(values); err == nil {
			s := newSuggestion(CriterionAnnualReturn, params.MinAnnualReturn, floorTo(v, 4), len(rows), "")
			s.Text = fmt.Sprintf("Lower Min Annualized to %.2f%%", *s.Suggested*100)
			suggestions = append(suggestions, s)
		}
	}

	if rows := blocked[CriterionStrictQuotes]; len(rows) > 0 {
		suggestions = append(suggestions, models.Suggestion{
			Criterion: CriterionStrictQuotes,
			Unlocks:   len(rows),
			Text:      "Allow theoretical prices by turning off strict quotes",
		})
	}

	return append(suggestions, models.Suggestion{Text: singleLegAdvice})
}

// blockedByOnly groups the rows that fail exactly one criterion by that criterion.
func blockedByOnly(contracts []models.EvaluatedContract, params models.ScreeningParameters) map[string][]models.EvaluatedContract {
	blocked := make(map[string][]models.EvaluatedContract)

	for _, c := range contracts {
		var failed []string
		unrelaxable := false

		if !c.OKDelta {
			failed = append(failed, CriterionDelta)
		}

		if !c.OKIV {
			switch {
			case c.IV != nil && *c.IV > params.IVMax:
				failed = append(failed, CriterionIVMax)
			case c.IV != nil && *c.IV < params.IVMin:
				failed = append(failed, CriterionIVMin)
			default:
				// no volatility at all, nothing to relax
				unrelaxable = true
			}
		}

		if !c.OKSpread {
			failed = append(failed, CriterionSpread)
		}

		if !c.OKVolume {
			failed = append(failed, CriterionVolume)
		}

		if !c.OKAnnual {
			failed = append(failed, CriterionAnnualReturn)
		}

		if params.StrictQuotes && !c.OKPrice {
			failed = append(failed, CriterionStrictQuotes)
		}

		if len(failed) == 1 && !unrelaxable {
			blocked[failed[0]] = append(blocked[failed[0]], c)
		}
	}

	return blocked
}

func suggestMinCredit(params models.ScreeningParameters, spreads []models.WingedSpread) (models.Suggestion, bool) {
	var credits stats.Float64Data
	for _, s := range spreads {
		if s.NetCredit+creditEpsilon < params.MinCredit {
			credits = append(credits, s.NetCredit)
		}
	}

	best, err := stats.Max(credits)
	if err != nil {
		return models.Suggestion{}, false
	}

	return newSuggestion(CriterionMinCredit, params.MinCredit, floorTo(best, 2), len(credits), "Lower Min Credit to $%.2f"), true
}

// ApplySuggestion returns params with the suggested threshold applied.
func ApplySuggestion(params models.ScreeningParameters, s models.Suggestion) models.ScreeningParameters {
	if s.Criterion == CriterionStrictQuotes {
		params.StrictQuotes = false
		return params
	}

	if s.Suggested == nil {
		return params
	}

	v := *s.Suggested

	switch s.Criterion {
	case CriterionDelta:
		params.DeltaHigh = v
	case CriterionIVMin:
		params.IVMin = v
	case CriterionIVMax:
		params.IVMax = v
	case CriterionSpread:
		params.MaxSpread = v
	case CriterionVolume:
		params.MinVolume = int(v)
	case CriterionAnnualReturn:
		params.MinAnnualReturn = v
	case CriterionMinCredit:
		params.MinCredit = v
	}

	return params
}

func newSuggestion(criterion string, current, suggested float64, unlocks int, format string) models.Suggestion {
	s := models.Suggestion{
		Criterion: criterion,
		Current:   models.Float64(current),
		Suggested: models.Float64(suggested),
		Unlocks:   unlocks,
	}

	if format != "" {
		s.Text = fmt.Sprintf(format, suggested)
	}

	return s
}

func collect(rows []models.EvaluatedContract, field func(models.EvaluatedContract) *float64) stats.Float64Data {
	var data stats.Float64Data
	for _, row := range rows {
		if v := field(row); v != nil {
			data = append(data, *v)
		}
	}

	return data
}

func ceilTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Ceil(v*scale) / scale
}

func floorTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(v*scale) / scale
}
