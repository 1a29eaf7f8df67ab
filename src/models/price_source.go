package models

// PriceSource tags where a contract's working price came from.
type PriceSource string

const (
	PriceSourceBidAsk  PriceSource = "B/A"
	PriceSourceBid     PriceSource = "Bid"
	PriceSourceAsk     PriceSource = "Ask"
	PriceSourceLast    PriceSource = "LAST"
	PriceSourceTheo    PriceSource = "THEO"
	PriceSourceUnknown PriceSource = "UNKNOWN"
)

// IsMarket reports whether the price was observed on the market rather than modeled.
func (p PriceSource) IsMarket() bool {
	switch p {
	case PriceSourceBidAsk, PriceSourceBid, PriceSourceAsk, PriceSourceLast:
		return true
	}

	return false
}
