package models

type TradierGreeksDTO struct {
	Delta     float64 `json:"delta"`
	Gamma     float64 `json:"gamma"`
	Theta     float64 `json:"theta"`
	Vega      float64 `json:"vega"`
	BidIv     float64 `json:"bid_iv"`
	MidIv     float64 `json:"mid_iv"`
	AskIv     float64 `json:"ask_iv"`
	SmvVol    float64 `json:"smv_vol"`
	UpdatedAt string  `json:"updated_at"`
}

type TradierOptionDTO struct {
	Symbol         string            `json:"symbol"`
	Description    string            `json:"description"`
	Type           string            `json:"type"`
	LastPrice      *float64          `json:"last"`
	Volume         int               `json:"volume"`
	Bid            float64           `json:"bid"`
	Ask            float64           `json:"ask"`
	Underlying     string            `json:"underlying"`
	Strike         float64           `json:"strike"`
	OpenInterest   int               `json:"open_interest"`
	ContractSize   int               `json:"contract_size"`
	ExpirationDate string            `json:"expiration_date"`
	OptionType     string            `json:"option_type"`
	RootSymbol     string            `json:"root_symbol"`
	Greeks         *TradierGreeksDTO `json:"greeks"`
}

// ImpliedVol prefers the mid IV and falls back to the smoothed surface value.
func (dto TradierOptionDTO) ImpliedVol() float64 {
	if dto.Greeks == nil {
		return 0
	}

	if Positive(dto.Greeks.MidIv) {
		return dto.Greeks.MidIv
	}

	return dto.Greeks.SmvVol
}

func (dto TradierOptionDTO) ToModel() RawContractQuote {
	quote := RawContractQuote{
		ContractSymbol: dto.Symbol,
		Ticker:         dto.Underlying,
		Strike:         dto.Strike,
		Bid:            dto.Bid,
		Ask:            dto.Ask,
		ImpliedVol:     dto.ImpliedVol(),
		Volume:         dto.Volume,
		OpenInterest:   dto.OpenInterest,
	}

	if dto.LastPrice != nil {
		quote.LastPrice = *dto.LastPrice
	}

	return quote
}

type TradierQuoteDTO struct {
	Symbol    string   `json:"symbol"`
	LastPrice *float64 `json:"last"`
	Bid       *float64 `json:"bid"`
	Ask       *float64 `json:"ask"`
	Close     *float64 `json:"close"`
	Prevclose *float64 `json:"prevclose"`
}

// SpotPrice returns the first positive of last, close and the previous close.
func (dto TradierQuoteDTO) SpotPrice() (float64, bool) {
	for _, v := range []*float64{dto.LastPrice, dto.Close, dto.Prevclose} {
		if v != nil && Positive(*v) {
			return *v, true
		}
	}

	if dto.Bid != nil && dto.Ask != nil && Positive(*dto.Bid) && Positive(*dto.Ask) {
		return (*dto.Bid + *dto.Ask) / 2, true
	}

	return 0, false
}
