package screener

import (
	"sort"

	"github.com/jiaming2012/option-screener/src/models"
)

// SortContracts ranks passing rows first, then by annualized return, volume and
// spread. An unknown spread ranks as the widest.
func SortContracts(contracts []models.EvaluatedContract) {
	sort.SliceStable(contracts, func(i, j int) bool {
		a, b := contracts[i], contracts[j]

		if a.OKAll != b.OKAll {
			return a.OKAll
		}

		if a.AnnualizedReturn != b.AnnualizedReturn {
			return a.AnnualizedReturn > b.AnnualizedReturn
		}

		if a.Volume != b.Volume {
			return a.Volume > b.Volume
		}

		return a.SpreadOrInf() < b.SpreadOrInf()
	})
}

// SortSpreads ranks liquid structures first, then by annualized return on risk and credit.
func SortSpreads(spreads []models.WingedSpread) {
	sort.SliceStable(spreads, func(i, j int) bool {
		a, b := spreads[i], spreads[j]

		if a.LiquidityOK != b.LiquidityOK {
			return a.LiquidityOK
		}

		if a.AnnualizedReturnOnRisk != b.AnnualizedReturnOnRisk {
			return a.AnnualizedReturnOnRisk > b.AnnualizedReturnOnRisk
		}

		return a.NetCredit > b.NetCredit
	})
}
