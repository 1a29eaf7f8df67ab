package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-screener/src/models"
	"github.com/jiaming2012/option-screener/src/screener"
)

type stubProvider struct {
	expirationsErr error
}

func (p *stubProvider) GetExpirations(ctx context.Context, ticker string) ([]string, error) {
	if p.expirationsErr != nil {
		return nil, p.expirationsErr
	}

	return []string{"2024-01-31"}, nil
}

func (p *stubProvider) GetSpotPrice(ctx context.Context, ticker string) (float64, error) {
	return 100, nil
}

func (p *stubProvider) GetOptionChain(ctx context.Context, ticker, expiration string, kind models.OptionType) ([]models.RawContractQuote, error) {
	if kind != models.Put {
		return nil, nil
	}

	return []models.RawContractQuote{{
		ContractSymbol: "XYZ240131P00095000",
		Ticker:         ticker,
		Strike:         95,
		Bid:            1.00,
		Ask:            1.20,
		ImpliedVol:     0.30,
		Volume:         500,
		OpenInterest:   1000,
	}}, nil
}

const testProfiles = `
profiles:
  - name: Relaxed
    strategy: sell_put
    parameters:
      min_volume: 1000
      min_annual_return: 0.05
`

func newTestRouter(t *testing.T, provider *stubProvider) http.Handler {
	t.Helper()

	profiles, err := models.ParseScreeningProfiles([]byte(testProfiles))
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) }
	service := screener.NewService(provider, now)

	return NewRouter(NewHandler(service, profiles))
}

func get(t *testing.T, handler http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	return rec
}

func TestScreenRoute(t *testing.T) {
	handler := newTestRouter(t, &stubProvider{})

	t.Run("query thresholds", func(t *testing.T) {
		rec := get(t, handler, "/api/v1/screens/sell-put?ticker=xyz&expirations=2024-01-31&min_annual_return=0.05&max_spread=0.3")
		require.Equal(t, http.StatusOK, rec.Code)

		var result models.ScreeningResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "XYZ", result.Ticker)
		assert.Equal(t, models.SellPut, result.Strategy)
		assert.Equal(t, 0.05, result.Parameters.MinAnnualReturn)
		assert.Equal(t, 100, result.Parameters.MinVolume)
		require.Len(t, result.Contracts, 1)
		assert.True(t, result.Contracts[0].OKAll)
	})

	t.Run("profile then query", func(t *testing.T) {
		rec := get(t, handler, "/api/v1/screens/sell_put?ticker=XYZ&profile=relaxed")
		require.Equal(t, http.StatusOK, rec.Code)

		var result models.ScreeningResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 1000, result.Parameters.MinVolume)
		assert.True(t, result.Empty)
		assert.NotEmpty(t, result.Suggestions)

		rec = get(t, handler, "/api/v1/screens/sell_put?ticker=XYZ&profile=relaxed&min_volume=50&include_rejected=true")
		require.Equal(t, http.StatusOK, rec.Code)

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 50, result.Parameters.MinVolume)
		assert.Equal(t, 0.05, result.Parameters.MinAnnualReturn)
		assert.False(t, result.Empty)
	})

	t.Run("bad requests", func(t *testing.T) {
		cases := map[string]int{
			"/api/v1/screens/strangle?ticker=XYZ":                  http.StatusBadRequest,
			"/api/v1/screens/sell_put":                             http.StatusBadRequest,
			"/api/v1/screens/sell_put?ticker=XYZ&delta_high=high":  http.StatusBadRequest,
			"/api/v1/screens/sell_put?ticker=XYZ&capital_mode=all": http.StatusBadRequest,
			"/api/v1/screens/sell_put?ticker=XYZ&profile=unknown":  http.StatusNotFound,
		}

		for url, status := range cases {
			rec := get(t, handler, url)
			assert.Equal(t, status, rec.Code, url)

			var dto models.ErrorDTO
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto), url)
			assert.NotEmpty(t, dto.Msg, url)
		}
	})
}

func TestExpirationsRoute(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		rec := get(t, newTestRouter(t, &stubProvider{}), "/api/v1/expirations/xyz")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp expirationsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "XYZ", resp.Ticker)
		assert.Equal(t, []string{"2024-01-31"}, resp.Expirations)
	})

	t.Run("provider down", func(t *testing.T) {
		provider := &stubProvider{expirationsErr: models.ErrProviderUnavailable}
		rec := get(t, newTestRouter(t, provider), "/api/v1/expirations/XYZ")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		provider.expirationsErr = errors.New("boom")
		rec = get(t, newTestRouter(t, provider), "/api/v1/expirations/XYZ")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHealthRoute(t *testing.T) {
	rec := get(t, newTestRouter(t, &stubProvider{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
