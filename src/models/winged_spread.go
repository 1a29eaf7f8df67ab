package models

import "math"

var inf = math.Inf(1)

type LegSide string

const (
	ShortPut  LegSide = "short_put"
	LongPut   LegSide = "long_put"
	ShortCall LegSide = "short_call"
	LongCall  LegSide = "long_call"
)

// SpreadLeg is one option of a four-leg structure, priced by the "used" price chain.
type SpreadLeg struct {
	Side           LegSide     `json:"side"`
	ContractSymbol string      `json:"contract_symbol"`
	Strike         float64     `json:"strike"`
	Premium        float64     `json:"premium"`
	PriceSource    PriceSource `json:"price_source"`
	Spread         *float64    `json:"spread"`
	Volume         int         `json:"volume"`
	OpenInterest   int         `json:"open_interest"`
	AbsDelta       *float64    `json:"abs_delta"`
}

// WingedSpread is an iron butterfly or iron condor for a single expiration.
//
// WingWidth is the width that was requested. The long legs are the nearest listed
// strikes, so PutWingWidth and CallWingWidth can differ from it. MaxLoss, ReturnOnRisk
// and CapitalAtRisk use the wider of the two actual wings.
type WingedSpread struct {
	Kind                   Strategy  `json:"kind"`
	Ticker                 string    `json:"ticker"`
	Expiration             string    `json:"expiration"`
	DaysToExpiration       int       `json:"days_to_exp"`
	ShortPut               SpreadLeg `json:"short_put"`
	ShortCall              SpreadLeg `json:"short_call"`
	LongPut                SpreadLeg `json:"long_put"`
	LongCall               SpreadLeg `json:"long_call"`
	WingWidth              float64   `json:"wing_width"`
	PutWingWidth           float64   `json:"put_wing_width"`
	CallWingWidth          float64   `json:"call_wing_width"`
	NetCredit              float64   `json:"net_credit"`
	MaxProfit              float64   `json:"max_profit"`
	MaxLoss                float64   `json:"max_loss"`
	BreakevenLow           float64   `json:"breakeven_low"`
	BreakevenHigh          float64   `json:"breakeven_high"`
	ReturnOnRisk           float64   `json:"return_on_risk"`
	AnnualizedReturnOnRisk float64   `json:"annualized_return_on_risk"`
	CapitalAtRisk          float64   `json:"capital_at_risk"`
	MaxLegSpread           *float64  `json:"max_leg_spread"`
	MinLegVolume           int       `json:"min_leg_volume"`
	LiquidityOK            bool      `json:"liquidity_ok"`
}

func (s WingedSpread) Legs() []SpreadLeg {
	return []SpreadLeg{s.LongPut, s.ShortPut, s.ShortCall, s.LongCall}
}
