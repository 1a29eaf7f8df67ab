package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/option-screener/src/models"
	"github.com/jiaming2012/option-screener/src/utils"
)

const (
	tradierExpirationsPath = "/v1/markets/options/expirations"
	tradierChainsPath      = "/v1/markets/options/chains"
	tradierQuotesPath      = "/v1/markets/quotes"
)

type TradierProvider struct {
	baseURL     string
	bearerToken string
	client      *http.Client
}

func NewTradierProvider(baseURL, bearerToken string) *TradierProvider {
	return &TradierProvider{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (p *TradierProvider) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	for k, v := range query {
		q.Add(k, v)
	}

	req.URL.RawQuery = q.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", p.bearerToken))

	log.Debugf("TradierProvider: fetching %s", req.URL.Path)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s, http code %v", path, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return body, nil
}

func (p *TradierProvider) GetExpirations(ctx context.Context, ticker string) ([]string, error) {
	body, err := p.get(ctx, tradierExpirationsPath, map[string]string{"symbol": ticker})
	if err != nil {
		return nil, fmt.Errorf("TradierProvider.GetExpirations: %w", err)
	}

	expirations, err := utils.ParseTradierResponse[string](body)
	if err != nil {
		return nil, fmt.Errorf("TradierProvider.GetExpirations: %w", err)
	}

	sort.Strings(expirations)

	return expirations, nil
}

func (p *TradierProvider) GetSpotPrice(ctx context.Context, ticker string) (float64, error) {
	body, err := p.get(ctx, tradierQuotesPath, map[string]string{"symbols": ticker})
	if err != nil {
		return 0, fmt.Errorf("TradierProvider.GetSpotPrice: %w", err)
	}

	quotes, err := utils.ParseTradierResponse[models.TradierQuoteDTO](body)
	if err != nil {
		return 0, fmt.Errorf("TradierProvider.GetSpotPrice: %w", err)
	}

	for _, quote := range quotes {
		if !strings.EqualFold(quote.Symbol, ticker) {
			continue
		}

		if spot, ok := quote.SpotPrice(); ok {
			return spot, nil
		}
	}

	return 0, fmt.Errorf("TradierProvider.GetSpotPrice: no price for %s", ticker)
}

// GetOptionChain fetches the chain with greeks and keeps the rows of one option type.
// Chain rows carry no moneyness, so the underlying quote is fetched to set InTheMoney.
// Rows are still returned when that quote fails.
func (p *TradierProvider) GetOptionChain(ctx context.Context, ticker, expiration string, kind models.OptionType) ([]models.RawContractQuote, error) {
	body, err := p.get(ctx, tradierChainsPath, map[string]string{
		"symbol":     ticker,
		"expiration": expiration,
		"greeks":     "true",
	})
	if err != nil {
		return nil, fmt.Errorf("TradierProvider.GetOptionChain: %w", err)
	}

	dtos, err := utils.ParseTradierResponse[models.TradierOptionDTO](body)
	if err != nil {
		return nil, fmt.Errorf("TradierProvider.GetOptionChain: %w", err)
	}

	spot, err := p.GetSpotPrice(ctx, ticker)
	if err != nil {
		log.Debugf("TradierProvider: moneyness unknown for %s: %v", ticker, err)
		spot = 0
	}

	var rows []models.RawContractQuote
	for _, dto := range dtos {
		if !strings.EqualFold(dto.OptionType, string(kind)) {
			continue
		}

		row := dto.ToModel()
		if row.Ticker == "" {
			row.Ticker = ticker
		}

		row.InTheMoney = inTheMoney(kind, row.Strike, spot)

		rows = append(rows, row)
	}

	return rows, nil
}
