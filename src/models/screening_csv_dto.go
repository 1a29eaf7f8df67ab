package models

import "strconv"

func formatCsvFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCsvFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}

	return formatCsvFloat(*v)
}

type ContractCsvDTO struct {
	Ticker           string `csv:"ticker"`
	Expiration       string `csv:"expiration"`
	OptionType       string `csv:"option_type"`
	ContractSymbol   string `csv:"contract_symbol"`
	Strike           string `csv:"strike"`
	Bid              string `csv:"bid"`
	Ask              string `csv:"ask"`
	Mid              string `csv:"mid"`
	PriceSource      string `csv:"price_source"`
	Spread           string `csv:"spread"`
	IV               string `csv:"iv"`
	Delta            string `csv:"delta"`
	AssignmentProb   string `csv:"assign_prob_est"`
	OTMDistancePct   string `csv:"otm_distance_pct"`
	DaysToExpiration int    `csv:"days_to_exp"`
	CapitalAtRisk    string `csv:"capital_at_risk"`
	SingleReturn     string `csv:"single_return"`
	AnnualizedReturn string `csv:"annualized_return"`
	Volume           int    `csv:"volume"`
	OpenInterest     int    `csv:"open_interest"`
	OKAll            bool   `csv:"ok_all"`
}

func NewContractCsvDTO(c EvaluatedContract) *ContractCsvDTO {
	return &ContractCsvDTO{
		Ticker:           c.Ticker,
		Expiration:       c.Expiration,
		OptionType:       string(c.OptionType),
		ContractSymbol:   c.ContractSymbol,
		Strike:           formatCsvFloat(c.Strike),
		Bid:              formatCsvFloatPtr(c.BidDisplay),
		Ask:              formatCsvFloatPtr(c.AskDisplay),
		Mid:              formatCsvFloatPtr(c.Mid),
		PriceSource:      string(c.PriceSource),
		Spread:           formatCsvFloatPtr(c.Spread),
		IV:               formatCsvFloatPtr(c.IV),
		Delta:            formatCsvFloatPtr(c.Delta),
		AssignmentProb:   formatCsvFloatPtr(c.AssignmentProbability),
		OTMDistancePct:   formatCsvFloatPtr(c.OTMDistancePct),
		DaysToExpiration: c.DaysToExpiration,
		CapitalAtRisk:    formatCsvFloat(c.CapitalAtRisk),
		SingleReturn:     formatCsvFloat(c.SingleReturn),
		AnnualizedReturn: formatCsvFloat(c.AnnualizedReturn),
		Volume:           c.Volume,
		OpenInterest:     c.OpenInterest,
		OKAll:            c.OKAll,
	}
}

type SpreadCsvDTO struct {
	Kind                   string `csv:"kind"`
	Ticker                 string `csv:"ticker"`
	Expiration             string `csv:"expiration"`
	DaysToExpiration       int    `csv:"days_to_exp"`
	LongPut                string `csv:"long_put"`
	ShortPut               string `csv:"short_put"`
	ShortCall              string `csv:"short_call"`
	LongCall               string `csv:"long_call"`
	WingWidth              string `csv:"wing_width"`
	PutWingWidth           string `csv:"put_wing_width"`
	CallWingWidth          string `csv:"call_wing_width"`
	NetCredit              string `csv:"net_credit"`
	MaxLoss                string `csv:"max_loss"`
	BreakevenLow           string `csv:"breakeven_low"`
	BreakevenHigh          string `csv:"breakeven_high"`
	ReturnOnRisk           string `csv:"return_on_risk"`
	AnnualizedReturnOnRisk string `csv:"annualized_return_on_risk"`
	CapitalAtRisk          string `csv:"capital_at_risk"`
	MaxLegSpread           string `csv:"max_leg_spread"`
	MinLegVolume           int    `csv:"min_leg_volume"`
	LiquidityOK            bool   `csv:"liquidity_ok"`
}

func NewSpreadCsvDTO(s WingedSpread) *SpreadCsvDTO {
	return &SpreadCsvDTO{
		Kind:                   string(s.Kind),
		Ticker:                 s.Ticker,
		Expiration:             s.Expiration,
		DaysToExpiration:       s.DaysToExpiration,
		LongPut:                formatCsvFloat(s.LongPut.Strike),
		ShortPut:               formatCsvFloat(s.ShortPut.Strike),
		ShortCall:              formatCsvFloat(s.ShortCall.Strike),
		LongCall:               formatCsvFloat(s.LongCall.Strike),
		WingWidth:              formatCsvFloat(s.WingWidth),
		PutWingWidth:           formatCsvFloat(s.PutWingWidth),
		CallWingWidth:          formatCsvFloat(s.CallWingWidth),
		NetCredit:              formatCsvFloat(s.NetCredit),
		MaxLoss:                formatCsvFloat(s.MaxLoss),
		BreakevenLow:           formatCsvFloat(s.BreakevenLow),
		BreakevenHigh:          formatCsvFloat(s.BreakevenHigh),
		ReturnOnRisk:           formatCsvFloat(s.ReturnOnRisk),
		AnnualizedReturnOnRisk: formatCsvFloat(s.AnnualizedReturnOnRisk),
		CapitalAtRisk:          formatCsvFloat(s.CapitalAtRisk),
		MaxLegSpread:           formatCsvFloatPtr(s.MaxLegSpread),
		MinLegVolume:           s.MinLegVolume,
		LiquidityOK:            s.LiquidityOK,
	}
}
