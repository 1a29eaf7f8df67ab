package models

import "math"

// RawContractQuote is one option chain row as delivered by a market data provider.
// Bid, Ask, LastPrice and ImpliedVol use zero (or NaN) to mean "no value".
type RawContractQuote struct {
	ContractSymbol string  `json:"contract_symbol"`
	Ticker         string  `json:"ticker"`
	Strike         float64 `json:"strike"`
	Bid            float64 `json:"bid"`
	Ask            float64 `json:"ask"`
	LastPrice      float64 `json:"last_price"`
	ImpliedVol     float64 `json:"implied_vol"`
	Volume         int     `json:"volume"`
	OpenInterest   int     `json:"open_interest"`
	InTheMoney     bool    `json:"in_the_money"`
}

// Float64 returns a pointer to v, or nil when v is NaN or infinite.
func Float64(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

// Positive reports whether v is a finite value strictly above zero.
func Positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
