package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/option-screener/src/models"
	"github.com/jiaming2012/option-screener/src/screener"
)

// screenQueryDTO holds the query keys of a screening request that are not thresholds.
type screenQueryDTO struct {
	Ticker          string `schema:"ticker"`
	Expirations     string `schema:"expirations"`
	IncludeRejected bool   `schema:"include_rejected"`
	Profile         string `schema:"profile"`
}

type Handler struct {
	service  *screener.Service
	profiles *models.ScreeningProfilesYAML
	decoder  *schema.Decoder
}

func NewHandler(service *screener.Service, profiles *models.ScreeningProfilesYAML) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		service:  service,
		profiles: profiles,
		decoder:  decoder,
	}
}

func statusFor(err error) (string, int) {
	switch {
	case errors.Is(err, models.ErrMissingTicker), errors.Is(err, models.ErrInvalidStrategy), errors.Is(err, models.ErrInvalidCapitalMode), errors.Is(err, models.ErrInvalidParameters):
		return "invalid_request", http.StatusBadRequest
	case errors.Is(err, models.ErrProfileNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, models.ErrProviderUnavailable):
		return "provider_unavailable", http.StatusServiceUnavailable
	default:
		return "internal", http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	errType, status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Errorf("%s: request failed", op)
	}

	setErrorResponse(errType, status, err, w)
}

// parseScreenRequest layers the query thresholds over the named profile, which itself
// is layered over the strategy defaults.
func (h *Handler) parseScreenRequest(r *http.Request) (screener.ScreenRequest, error) {
	if err := r.ParseForm(); err != nil {
		return screener.ScreenRequest{}, fmt.Errorf("%w: %v", models.ErrInvalidParameters, err)
	}

	var query screenQueryDTO
	if err := h.decoder.Decode(&query, r.Form); err != nil {
		return screener.ScreenRequest{}, fmt.Errorf("%w: %v", models.ErrInvalidParameters, err)
	}

	strategy, err := models.ParseStrategy(mux.Vars(r)["strategy"])
	if err != nil {
		return screener.ScreenRequest{}, err
	}

	params := models.DefaultParametersFor(strategy)

	if query.Profile != "" {
		if h.profiles == nil {
			return screener.ScreenRequest{}, fmt.Errorf("%w: %s", models.ErrProfileNotFound, query.Profile)
		}

		profile, err := h.profiles.GetProfile(query.Profile)
		if err != nil {
			return screener.ScreenRequest{}, err
		}

		if params, err = profile.Apply(params); err != nil {
			return screener.ScreenRequest{}, err
		}
	}

	if err := h.decoder.Decode(&params, r.Form); err != nil {
		return screener.ScreenRequest{}, fmt.Errorf("%w: %v", models.ErrInvalidParameters, err)
	}

	if err := params.CapitalMode.Validate(); err != nil {
		return screener.ScreenRequest{}, err
	}

	var expirations []string
	if query.Expirations != "" {
		expirations = strings.Split(query.Expirations, ",")
	}

	return screener.ScreenRequest{
		Ticker:          query.Ticker,
		Expirations:     expirations,
		Strategy:        strategy,
		Params:          params,
		IncludeRejected: query.IncludeRejected,
	}, nil
}

func (h *Handler) handleScreen(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseScreenRequest(r)
	if err != nil {
		h.writeError(w, "handleScreen", err)
		return
	}

	result, err := h.service.Screen(r.Context(), req)
	if err != nil {
		h.writeError(w, "handleScreen", err)
		return
	}

	if err := setResponse(result, w); err != nil {
		log.Errorf("handleScreen: %v", err)
	}
}

type expirationsResponse struct {
	Ticker      string   `json:"ticker"`
	Expirations []string `json:"expirations"`
}

func (h *Handler) handleExpirations(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	expirations, err := h.service.Expirations(r.Context(), ticker)
	if err != nil {
		h.writeError(w, "handleExpirations", err)
		return
	}

	if expirations == nil {
		expirations = []string{}
	}

	if err := setResponse(expirationsResponse{Ticker: ticker, Expirations: expirations}, w); err != nil {
		log.Errorf("handleExpirations: %v", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	setResponse(map[string]string{"status": "ok"}, w)
}

// SetupHandler registers the screening routes on router, each tagged with its
// pattern for the HTTP instrumentation.
func SetupHandler(router *mux.Router, h *Handler) {
	handleFunc := func(pattern string, handlerFunc func(http.ResponseWriter, *http.Request)) {
		router.Handle(pattern, otelhttp.WithRouteTag(pattern, http.HandlerFunc(handlerFunc))).Methods(http.MethodGet)
	}

	handleFunc("/healthz", handleHealth)
	handleFunc("/api/v1/expirations/{ticker}", h.handleExpirations)
	handleFunc("/api/v1/screens/{strategy}", h.handleScreen)
}

func NewRouter(h *Handler) http.Handler {
	router := mux.NewRouter()
	SetupHandler(router, h)

	return otelhttp.NewHandler(router, "/")
}
