package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/jiaming2012/option-screener/src/models"
)

type ResilienceConfig struct {
	Name string
	// Attempts is the total number of tries per call, including the first.
	Attempts        int
	Backoff         time.Duration
	RequestInterval time.Duration
	// BreakerFailures consecutive failed calls open the breaker for BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func DefaultResilienceConfig(name string) ResilienceConfig {
	return ResilienceConfig{
		Name:            name,
		Attempts:        3,
		Backoff:         800 * time.Millisecond,
		RequestInterval: 200 * time.Millisecond,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// ResilientProvider paces, retries and circuit-breaks calls to another Provider.
type ResilientProvider struct {
	provider Provider
	config   ResilienceConfig
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
}

func NewResilientProvider(provider Provider, config ResilienceConfig) *ResilientProvider {
	if config.Attempts < 1 {
		config.Attempts = 1
	}

	limit := rate.Inf
	if config.RequestInterval > 0 {
		limit = rate.Every(config.RequestInterval)
	}

	settings := gobreaker.Settings{
		Name:    config.Name,
		Timeout: config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return config.BreakerFailures > 0 && counts.ConsecutiveFailures >= config.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("ResilientProvider: %s breaker %s -> %s", name, from, to)
		},
	}

	return &ResilientProvider{
		provider: provider,
		config:   config,
		limiter:  rate.NewLimiter(limit, 1),
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

func (p *ResilientProvider) State() gobreaker.State {
	return p.breaker.State()
}

func do[T any](ctx context.Context, p *ResilientProvider, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	tracer := otel.Tracer("ResilientProvider")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("provider", p.config.Name))

	var result T
	attempts := 0

	operation := func() error {
		attempts++

		if err := p.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		out, err := p.breaker.Execute(func() (interface{}, error) {
			return fn(ctx)
		})

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err))
		}

		if err != nil {
			log.WithError(err).Debugf("ResilientProvider: %s attempt %d failed", op, attempts)
			return err
		}

		result = out.(T)
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(p.config.Backoff), uint64(p.config.Attempts-1)), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		var zero T
		return zero, fmt.Errorf("ResilientProvider.%s: failed after %d attempts: %w", op, attempts, err)
	}

	span.SetAttributes(attribute.Int("attempts", attempts))

	return result, nil
}

func (p *ResilientProvider) GetExpirations(ctx context.Context, ticker string) ([]string, error) {
	return do(ctx, p, "GetExpirations", func(ctx context.Context) ([]string, error) {
		return p.provider.GetExpirations(ctx, ticker)
	})
}

func (p *ResilientProvider) GetSpotPrice(ctx context.Context, ticker string) (float64, error) {
	return do(ctx, p, "GetSpotPrice", func(ctx context.Context) (float64, error) {
		return p.provider.GetSpotPrice(ctx, ticker)
	})
}

func (p *ResilientProvider) GetOptionChain(ctx context.Context, ticker, expiration string, kind models.OptionType) ([]models.RawContractQuote, error) {
	return do(ctx, p, "GetOptionChain", func(ctx context.Context) ([]models.RawContractQuote, error) {
		return p.provider.GetOptionChain(ctx, ticker, expiration, kind)
	})
}
