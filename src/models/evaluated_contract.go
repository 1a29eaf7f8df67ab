package models

// EvaluatedContract is a RawContractQuote enriched with analytics and filter flags.
// Nil pointer fields carry "no value" and never take part in a passing criterion.
type EvaluatedContract struct {
	RawContractQuote
	OptionType            OptionType  `json:"option_type"`
	Expiration            string      `json:"expiration"`
	DaysToExpiration      int         `json:"days_to_exp"`
	Mid                   *float64    `json:"mid"`
	PriceSource           PriceSource `json:"price_source"`
	Premium               float64     `json:"premium"`
	Spread                *float64    `json:"spread"`
	TheoreticalPrice      *float64    `json:"theo_price"`
	IV                    *float64    `json:"iv"`
	IVFromPrice           *float64    `json:"iv_from_price"`
	Delta                 *float64    `json:"delta"`
	AbsDelta              *float64    `json:"abs_delta"`
	ITMProbability        *float64    `json:"itm_prob"`
	AssignmentProbability *float64    `json:"assign_prob_est"`
	CapitalAtRisk         float64     `json:"capital_at_risk"`
	SingleReturn          float64     `json:"single_return"`
	AnnualizedReturn      float64     `json:"annualized_return"`
	OTMDistancePct        *float64    `json:"otm_distance_pct"`
	OKDelta               bool        `json:"ok_delta"`
	OKIV                  bool        `json:"ok_iv"`
	OKSpread              bool        `json:"ok_spread"`
	OKVolume              bool        `json:"ok_volume"`
	OKAnnual              bool        `json:"ok_annual"`
	OKPrice               bool        `json:"ok_price"`
	OKAll                 bool        `json:"ok_all"`
	BidDisplay            *float64    `json:"bid_display"`
	AskDisplay            *float64    `json:"ask_display"`
	SpreadDisplay         *float64    `json:"spread_display"`
}

// SpreadOrInf returns the bid/ask spread, treating an unknown spread as the worst value.
func (c EvaluatedContract) SpreadOrInf() float64 {
	if c.Spread == nil {
		return inf
	}

	return *c.Spread
}
