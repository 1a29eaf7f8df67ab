package marketdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	polygonmodels "github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-screener/src/models"
	"github.com/jiaming2012/option-screener/src/utils"
)

const polygonChainPageSize = 250

type PolygonProvider struct {
	Client *polygon.Client
	now    func() time.Time
}

func NewPolygonProvider(apiKey string) *PolygonProvider {
	return &PolygonProvider{
		Client: polygon.New(apiKey),
		now:    time.Now,
	}
}

// GetExpirations derives the expirations from the chain snapshot.
func (p *PolygonProvider) GetExpirations(ctx context.Context, ticker string) ([]string, error) {
	params := polygonmodels.ListOptionsChainParams{
		UnderlyingAsset: ticker,
	}.WithLimit(polygonChainPageSize)

	seen := make(map[string]bool)
	var expirations []string

	iter := p.Client.ListOptionsChainSnapshot(ctx, params)
	for iter.Next() {
		exp := time.Time(iter.Item().Details.ExpirationDate).Format(utils.ExpirationDateLayout)
		if !seen[exp] {
			seen[exp] = true
			expirations = append(expirations, exp)
		}
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("PolygonProvider.GetExpirations: failed to list chain snapshot: %w", err)
	}

	sort.Strings(expirations)

	return expirations, nil
}

// GetSpotPrice returns the most recent daily close.
func (p *PolygonProvider) GetSpotPrice(ctx context.Context, ticker string) (float64, error) {
	to := p.now()
	from := to.AddDate(0, 0, -7)

	params := polygonmodels.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   polygonmodels.Day,
		From:       polygonmodels.Millis(from),
		To:         polygonmodels.Millis(to),
	}.WithOrder(polygonmodels.Desc).WithAdjusted(true)

	iter := p.Client.ListAggs(ctx, params)
	for iter.Next() {
		if c := iter.Item().Close; models.Positive(c) {
			return c, nil
		}
	}

	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("PolygonProvider.GetSpotPrice: failed to list aggs: %w", err)
	}

	return 0, fmt.Errorf("PolygonProvider.GetSpotPrice: no daily bars for %s", ticker)
}

func (p *PolygonProvider) GetOptionChain(ctx context.Context, ticker, expiration string, kind models.OptionType) ([]models.RawContractQuote, error) {
	exp, err := utils.ParseExpiration(expiration)
	if err != nil {
		return nil, fmt.Errorf("PolygonProvider.GetOptionChain: %w", err)
	}

	contractType := polygonmodels.ContractPut
	if kind == models.Call {
		contractType = polygonmodels.ContractCall
	}

	params := polygonmodels.ListOptionsChainParams{
		UnderlyingAsset: ticker,
	}.WithContractType(contractType).
		WithExpirationDate(polygonmodels.EQ, polygonmodels.Date(exp)).
		WithLimit(polygonChainPageSize)

	var rows []models.RawContractQuote

	iter := p.Client.ListOptionsChainSnapshot(ctx, params)
	for iter.Next() {
		rows = append(rows, polygonSnapshotToQuote(ticker, kind, iter.Item()))
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("PolygonProvider.GetOptionChain: failed to list chain snapshot: %w", err)
	}

	log.Debugf("PolygonProvider: %d %s contracts for %s %s", len(rows), kind, ticker, expiration)

	return rows, nil
}

func polygonSnapshotToQuote(ticker string, kind models.OptionType, snapshot polygonmodels.OptionContractSnapshot) models.RawContractQuote {
	quote := models.RawContractQuote{
		ContractSymbol: snapshot.Details.Ticker,
		Ticker:         ticker,
		Strike:         snapshot.Details.StrikePrice,
		Bid:            snapshot.LastQuote.Bid,
		Ask:            snapshot.LastQuote.Ask,
		LastPrice:      snapshot.Day.Close,
		ImpliedVol:     snapshot.ImpliedVolatility,
		Volume:         int(snapshot.Day.Volume),
		OpenInterest:   int(snapshot.OpenInterest),
	}

	quote.InTheMoney = inTheMoney(kind, quote.Strike, snapshot.UnderlyingAsset.Price)

	return quote
}
