package screener

import (
	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/option-screener/src/models"
)

// SummarizeContracts describes a single leg run: evaluated holds every row, returned the rows shown.
func SummarizeContracts(evaluated, returned []models.EvaluatedContract) models.ScreeningSummary {
	summary := models.ScreeningSummary{
		Evaluated: len(evaluated),
		Returned:  len(returned),
	}

	for _, c := range evaluated {
		if c.OKAll {
			summary.Passed++
		}
	}

	annual := collect(returned, func(c models.EvaluatedContract) *float64 { return models.Float64(c.AnnualizedReturn) })
	if median, err := stats.Median(annual); err == nil {
		summary.MedianAnnualizedReturn = models.Float64(median)
	}

	iv := collect(returned, func(c models.EvaluatedContract) *float64 { return c.IV })
	if median, err := stats.Median(iv); err == nil {
		summary.MedianIV = models.Float64(median)
	}

	return summary
}

// SummarizeSpreads describes a structure run: built holds every priced structure, returned the ones shown.
func SummarizeSpreads(evaluated int, built, returned []models.WingedSpread) models.ScreeningSummary {
	summary := models.ScreeningSummary{
		Evaluated: evaluated,
		Passed:    len(returned),
		Returned:  len(returned),
	}

	var credits, annual stats.Float64Data
	for _, s := range built {
		credits = append(credits, s.NetCredit)
	}

	for _, s := range returned {
		annual = append(annual, s.AnnualizedReturnOnRisk)
	}

	if best, err := stats.Max(credits); err == nil {
		summary.BestCredit = models.Float64(best)
	}

	if median, err := stats.Median(annual); err == nil {
		summary.MedianAnnualizedReturn = models.Float64(median)
	}

	return summary
}
