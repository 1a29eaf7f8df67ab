package models

// DefaultContractMultiplier is the number of shares one standard equity option controls.
const DefaultContractMultiplier = 100.0

const (
	DefaultWingWidths         = "3,5,10"
	DefaultFallbackVolatility = 0.40
	DefaultDaysIfUnknown      = 30
	DefaultTopK               = 3
	DefaultRiskFreeRate       = 0.05
)

// ScreeningParameters holds the thresholds of one screening run. Values are never
// range checked; zero values fall back to defaults where one is documented.
type ScreeningParameters struct {
	DeltaHigh            float64     `json:"delta_high" yaml:"delta_high" schema:"delta_high"`
	IVMin                float64     `json:"iv_min" yaml:"iv_min" schema:"iv_min"`
	IVMax                float64     `json:"iv_max" yaml:"iv_max" schema:"iv_max"`
	MaxSpread            float64     `json:"max_spread" yaml:"max_spread" schema:"max_spread"`
	MinVolume            int         `json:"min_volume" yaml:"min_volume" schema:"min_volume"`
	MinAnnualReturn      float64     `json:"min_annual_return" yaml:"min_annual_return" schema:"min_annual_return"`
	CapitalMode          CapitalMode `json:"capital_mode" yaml:"capital_mode" schema:"capital_mode"`
	StrictQuotes         bool        `json:"strict_quotes" yaml:"strict_quotes" schema:"strict_quotes"`
	RiskFreeRate         float64     `json:"risk_free_rate" yaml:"risk_free_rate" schema:"risk_free_rate"`
	ContractMultiplier   float64     `json:"contract_multiplier" yaml:"contract_multiplier" schema:"contract_multiplier"`
	DefaultDaysIfUnknown int         `json:"default_days_if_unknown" yaml:"default_days_if_unknown" schema:"default_days_if_unknown"`
	FallbackVolatility   float64     `json:"fallback_volatility" yaml:"fallback_volatility" schema:"fallback_volatility"`

	// single leg post filters
	OnlyOTM           bool    `json:"only_otm" yaml:"only_otm" schema:"only_otm"`
	MinPremium        float64 `json:"min_premium" yaml:"min_premium" schema:"min_premium"`
	MinOTMDistancePct float64 `json:"min_otm_distance_pct" yaml:"min_otm_distance_pct" schema:"min_otm_distance_pct"`

	// four leg structures
	MinCredit      float64 `json:"min_credit" yaml:"min_credit" schema:"min_credit"`
	WingWidths     string  `json:"wing_widths" yaml:"wing_widths" schema:"wing_widths"`
	ShortDeltaLow  float64 `json:"short_delta_low" yaml:"short_delta_low" schema:"short_delta_low"`
	ShortDeltaHigh float64 `json:"short_delta_high" yaml:"short_delta_high" schema:"short_delta_high"`
	TopK           int     `json:"top_k" yaml:"top_k" schema:"top_k"`
	StrikeOffset   float64 `json:"strike_offset" yaml:"strike_offset" schema:"strike_offset"`
	MaxLegSpread   float64 `json:"max_leg_spread" yaml:"max_leg_spread" schema:"max_leg_spread"`
	MinLegVolume   int     `json:"min_leg_volume" yaml:"min_leg_volume" schema:"min_leg_volume"`
}

func DefaultScreeningParameters() ScreeningParameters {
	return ScreeningParameters{
		DeltaHigh:            0.35,
		IVMin:                0,
		IVMax:                1.5,
		MaxSpread:            0.30,
		MinVolume:            100,
		MinAnnualReturn:      0.15,
		CapitalMode:          CapitalConservative,
		RiskFreeRate:         DefaultRiskFreeRate,
		ContractMultiplier:   DefaultContractMultiplier,
		DefaultDaysIfUnknown: DefaultDaysIfUnknown,
		FallbackVolatility:   DefaultFallbackVolatility,
		MinCredit:            0.20,
		WingWidths:           DefaultWingWidths,
		ShortDeltaLow:        0.10,
		ShortDeltaHigh:       0.35,
		TopK:                 DefaultTopK,
		MaxLegSpread:         0.50,
	}
}

// DefaultParametersFor returns the defaults of one strategy. Covered calls are screened
// on premium and strike distance rather than annualized return.
func DefaultParametersFor(strategy Strategy) ScreeningParameters {
	params := DefaultScreeningParameters()

	if strategy == CoveredCall {
		params.DeltaHigh = 0.30
		params.IVMax = 1.2
		params.MaxSpread = 0.10
		params.MinAnnualReturn = 0
		params.OnlyOTM = true
		params.MinPremium = 0.50
		params.MinOTMDistancePct = 5
	}

	return params
}

func (p ScreeningParameters) Multiplier() float64 {
	if p.ContractMultiplier > 0 {
		return p.ContractMultiplier
	}

	return DefaultContractMultiplier
}

func (p ScreeningParameters) VolatilityGuess() float64 {
	if p.FallbackVolatility > 0 {
		return p.FallbackVolatility
	}

	return DefaultFallbackVolatility
}

func (p ScreeningParameters) DaysIfUnknown() int {
	if p.DefaultDaysIfUnknown > 0 {
		return p.DefaultDaysIfUnknown
	}

	return DefaultDaysIfUnknown
}

func (p ScreeningParameters) CandidateCount() int {
	if p.TopK > 0 {
		return p.TopK
	}

	return DefaultTopK
}

func (p ScreeningParameters) Capital() CapitalMode {
	if p.CapitalMode == CapitalNet {
		return CapitalNet
	}

	return CapitalConservative
}
