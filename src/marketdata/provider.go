package marketdata

import (
	"context"

	"github.com/jiaming2012/option-screener/src/models"
)

// Provider supplies option chains for a ticker. Implementations talk to unreliable
// services: empty results and partially filled rows are normal.
type Provider interface {
	// GetExpirations lists expirations as ISO-8601 dates in ascending order.
	GetExpirations(ctx context.Context, ticker string) ([]string, error)
	GetSpotPrice(ctx context.Context, ticker string) (float64, error)
	GetOptionChain(ctx context.Context, ticker, expiration string, kind models.OptionType) ([]models.RawContractQuote, error)
}

// inTheMoney is false when the spot is unknown.
func inTheMoney(kind models.OptionType, strike, spot float64) bool {
	if !models.Positive(spot) {
		return false
	}

	if kind == models.Call {
		return strike < spot
	}

	return strike > spot
}
