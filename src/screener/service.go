package screener

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/jiaming2012/option-screener/src/eventpubsub"
	"github.com/jiaming2012/option-screener/src/marketdata"
	"github.com/jiaming2012/option-screener/src/models"
)

// AllExpirations requests every expiration the provider lists.
const AllExpirations = "all"

type ScreenRequest struct {
	Ticker          string
	Expirations     []string
	Strategy        models.Strategy
	Params          models.ScreeningParameters
	IncludeRejected bool
}

type Service struct {
	provider  marketdata.Provider
	now       func() time.Time
	runs      metric.Int64Counter
	evaluated metric.Int64Counter
	built     metric.Int64Counter
}

func NewService(provider marketdata.Provider, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	meter := otel.Meter("screener")

	return &Service{
		provider:  provider,
		now:       now,
		runs:      newCounter(meter, "screener.runs", "Completed screening runs"),
		evaluated: newCounter(meter, "screener.contracts.evaluated", "Option contracts evaluated"),
		built:     newCounter(meter, "screener.spreads.built", "Four leg structures priced"),
	}
}

func newCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		log.Warnf("NewService: failed to create counter %s: %v", name, err)
		return noop.Int64Counter{}
	}

	return counter
}

func (s *Service) Expirations(ctx context.Context, ticker string) ([]string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("Expirations: %w", models.ErrMissingTicker)
	}

	expirations, err := s.provider.GetExpirations(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("Expirations: failed to fetch expirations for %s: %w", ticker, err)
	}

	return expirations, nil
}

// Screen runs one screening request end to end. Missing upstream data and filters that
// leave nothing produce an empty result with a message, not an error.
func (s *Service) Screen(ctx context.Context, req ScreenRequest) (*models.ScreeningResult, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		return nil, fmt.Errorf("Screen: %w", models.ErrMissingTicker)
	}

	if err := req.Strategy.Validate(); err != nil {
		return nil, fmt.Errorf("Screen: %w", err)
	}

	tracer := otel.Tracer("Screen")
	ctx, span := tracer.Start(ctx, "Screen")
	defer span.End()

	span.SetAttributes(attribute.String("ticker", ticker), attribute.String("strategy", string(req.Strategy)))

	now := s.now()
	result := &models.ScreeningResult{
		RunID:      uuid.New(),
		Ticker:     ticker,
		Strategy:   req.Strategy,
		Parameters: req.Params,
		CreatedAt:  now,
	}

	logger := log.WithFields(log.Fields{
		"run_id":   result.RunID,
		"ticker":   ticker,
		"strategy": req.Strategy,
	})

	expirations, err := s.resolveExpirations(ctx, ticker, req.Expirations)
	if err != nil {
		logger.WithError(err).Warn("failed to fetch expirations")
	}

	result.Expirations = expirations

	if len(expirations) == 0 {
		result.Empty = true
		result.Message = fmt.Sprintf("No option expirations available for %s.", ticker)
		s.finish(ctx, result, logger)
		return result, nil
	}

	spot, err := s.provider.GetSpotPrice(ctx, ticker)
	if err != nil {
		logger.WithError(err).Warn("failed to fetch spot price")
		spot = math.NaN()
	}

	result.Spot = models.Float64(spot)

	if req.Strategy.IsSpread() {
		s.screenSpreads(ctx, logger, result, req, spot, now)
	} else {
		s.screenSingleLeg(ctx, logger, result, req, spot, now)
	}

	s.finish(ctx, result, logger)

	return result, nil
}

func (s *Service) resolveExpirations(ctx context.Context, ticker string, requested []string) ([]string, error) {
	var expirations []string
	for _, exp := range requested {
		exp = strings.TrimSpace(exp)
		if strings.EqualFold(exp, AllExpirations) {
			return s.provider.GetExpirations(ctx, ticker)
		}

		if exp != "" {
			expirations = append(expirations, exp)
		}
	}

	if len(expirations) == 0 {
		return s.provider.GetExpirations(ctx, ticker)
	}

	return expirations, nil
}

func (s *Service) fetchChain(ctx context.Context, logger *log.Entry, ticker, expiration string, kind models.OptionType) []models.RawContractQuote {
	chain, err := s.provider.GetOptionChain(ctx, ticker, expiration, kind)
	if err != nil {
		logger.WithError(err).WithFields(log.Fields{
			"expiration":  expiration,
			"option_type": kind,
		}).Warn("failed to fetch option chain")

		return nil
	}

	return chain
}

func (s *Service) screenSingleLeg(ctx context.Context, logger *log.Entry, result *models.ScreeningResult, req ScreenRequest, spot float64, now time.Time) {
	kind := req.Strategy.OptionTypes()[0]

	var evaluated []models.EvaluatedContract
	for _, exp := range result.Expirations {
		chain := s.fetchChain(ctx, logger, result.Ticker, exp, kind)
		evaluated = append(evaluated, EvaluateChain(chain, spot, exp, kind, req.Params, now)...)
	}

	SortContracts(evaluated)
	s.evaluated.Add(ctx, int64(len(evaluated)))

	result.Contracts = FilterContracts(evaluated, spot, req.Params, req.IncludeRejected)
	result.Summary = SummarizeContracts(evaluated, result.Contracts)

	if len(result.Contracts) > 0 {
		return
	}

	result.Empty = true

	if len(evaluated) == 0 {
		result.Message = fmt.Sprintf("No option chain data returned for %s.", result.Ticker)
		return
	}

	result.Message = "No contracts passed the filters."
	result.Suggestions = SuggestRelaxations(req.Strategy, req.Params, evaluated, nil)
}

func (s *Service) screenSpreads(ctx context.Context, logger *log.Entry, result *models.ScreeningResult, req ScreenRequest, spot float64, now time.Time) {
	var built []models.WingedSpread
	evaluated := 0

	for _, exp := range result.Expirations {
		calls := EvaluateChain(s.fetchChain(ctx, logger, result.Ticker, exp, models.Call), spot, exp, models.Call, req.Params, now)
		puts := EvaluateChain(s.fetchChain(ctx, logger, result.Ticker, exp, models.Put), spot, exp, models.Put, req.Params, now)
		evaluated += len(calls) + len(puts)

		if len(calls) == 0 || len(puts) == 0 {
			logger.WithField("expiration", exp).Info("skipping expiration without both chains")
			continue
		}

		switch req.Strategy {
		case models.IronButterfly:
			built = append(built, BuildIronButterflies(calls, puts, spot, req.Params)...)
		case models.IronCondor:
			built = append(built, BuildIronCondors(calls, puts, spot, req.Params)...)
		}
	}

	SortSpreads(built)
	s.evaluated.Add(ctx, int64(evaluated))
	s.built.Add(ctx, int64(len(built)))

	result.Spreads = FilterMinCredit(built, req.Params.MinCredit)
	result.Summary = SummarizeSpreads(evaluated, built, result.Spreads)

	if len(result.Spreads) > 0 {
		return
	}

	result.Empty = true

	if evaluated == 0 {
		result.Message = fmt.Sprintf("No option chain data returned for %s.", result.Ticker)
		return
	}

	result.Message = "No structures met the minimum credit."
	result.Suggestions = SuggestRelaxations(req.Strategy, req.Params, nil, built)
}

func (s *Service) finish(ctx context.Context, result *models.ScreeningResult, logger *log.Entry) {
	s.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("strategy", string(result.Strategy))))

	logger.WithFields(log.Fields{
		"expirations": len(result.Expirations),
		"contracts":   len(result.Contracts),
		"spreads":     len(result.Spreads),
		"empty":       result.Empty,
	}).Info("screening completed")

	eventpubsub.Publish(eventpubsub.ScreeningCompletedEvent, models.ScreeningCompletedEvent{Result: result})
}
