package marketdata

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-screener/src/models"
)

type csvChainKey struct {
	ticker     string
	expiration string
	kind       models.OptionType
}

// CSVProvider serves option chains from a snapshot file, one row per contract.
type CSVProvider struct {
	chains      map[csvChainKey][]models.RawContractQuote
	expirations map[string][]string
	spots       map[string]float64
}

func NewCSVProvider(path string) (*CSVProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("NewCSVProvider: failed to open %s: %w", path, err)
	}

	defer f.Close()

	var rows []*models.OptionChainCsvDTO
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("NewCSVProvider: failed to unmarshal %s: %w", path, err)
	}

	p := &CSVProvider{
		chains:      make(map[csvChainKey][]models.RawContractQuote),
		expirations: make(map[string][]string),
		spots:       make(map[string]float64),
	}

	for i, row := range rows {
		kind, err := row.GetOptionType()
		if err != nil {
			return nil, fmt.Errorf("NewCSVProvider: row %d: %w", i+1, err)
		}

		quote, err := row.ToModel()
		if err != nil {
			return nil, fmt.Errorf("NewCSVProvider: row %d: %w", i+1, err)
		}

		expiration := strings.TrimSpace(row.Expiration)
		key := csvChainKey{ticker: quote.Ticker, expiration: expiration, kind: kind}

		if !p.hasExpiration(quote.Ticker, expiration) {
			p.expirations[quote.Ticker] = append(p.expirations[quote.Ticker], expiration)
		}

		p.chains[key] = append(p.chains[key], quote)

		if spot, ok := row.GetUnderlyingPrice(); ok {
			p.spots[quote.Ticker] = spot
		}
	}

	for ticker := range p.expirations {
		sort.Strings(p.expirations[ticker])
	}

	log.Infof("NewCSVProvider: loaded %d contracts from %s", len(rows), path)

	return p, nil
}

func (p *CSVProvider) hasExpiration(ticker, expiration string) bool {
	for _, exp := range p.expirations[ticker] {
		if exp == expiration {
			return true
		}
	}

	return false
}

func (p *CSVProvider) GetExpirations(ctx context.Context, ticker string) ([]string, error) {
	return p.expirations[strings.ToUpper(ticker)], nil
}

func (p *CSVProvider) GetSpotPrice(ctx context.Context, ticker string) (float64, error) {
	spot, found := p.spots[strings.ToUpper(ticker)]
	if !found {
		return 0, fmt.Errorf("CSVProvider.GetSpotPrice: no underlying_price for %s", ticker)
	}

	return spot, nil
}

func (p *CSVProvider) GetOptionChain(ctx context.Context, ticker, expiration string, kind models.OptionType) ([]models.RawContractQuote, error) {
	key := csvChainKey{ticker: strings.ToUpper(ticker), expiration: expiration, kind: kind}

	rows := p.chains[key]
	out := make([]models.RawContractQuote, len(rows))
	copy(out, rows)

	return out, nil
}
