package screener

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jiaming2012/option-screener/src/models"
)

var defaultWingWidths = []float64{3, 5, 10}

// ParseWingWidths reads a comma separated list of wing widths. Any unparsable entry,
// or a list with no positive width left, yields the default widths.
func ParseWingWidths(text string) []float64 {
	var widths []float64

	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		w, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return append([]float64(nil), defaultWingWidths...)
		}

		if w > 0 && !math.IsInf(w, 1) {
			widths = append(widths, w)
		}
	}

	if len(widths) == 0 {
		return append([]float64(nil), defaultWingWidths...)
	}

	return widths
}

func sortedByStrike(contracts []models.EvaluatedContract) []models.EvaluatedContract {
	sorted := append([]models.EvaluatedContract(nil), contracts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Strike < sorted[j].Strike
	})

	return sorted
}

// nearestContract returns the contract whose strike is closest to target. contracts
// must be ordered by strike, so ties resolve to the lower strike.
func nearestContract(contracts []models.EvaluatedContract, target float64) (models.EvaluatedContract, bool) {
	best := -1
	bestDistance := math.Inf(1)

	for i, c := range contracts {
		if d := math.Abs(c.Strike - target); d < bestDistance {
			best, bestDistance = i, d
		}
	}

	if best < 0 {
		return models.EvaluatedContract{}, false
	}

	return contracts[best], true
}
