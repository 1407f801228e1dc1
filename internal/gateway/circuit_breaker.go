package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/api"
	"github.com/popeskul/gridpulse/internal/config"
	"github.com/popeskul/gridpulse/internal/metrics"
)

const breakerName = "whatsapp-provider"

// ErrCircuitOpen is returned while the provider is considered unavailable,
// including half-open trial calls beyond the allowed request count.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker guards calls to the messaging provider.
type CircuitBreaker struct {
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewCircuitBreaker trips once at least ConsecutiveFails requests were seen in
// the interval and the failure ratio reaches FailureRatio. Caller
// cancellations do not count as provider failures.
func NewCircuitBreaker(cfg *config.CircuitBreakerConfig, logger *zap.Logger) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.ConsecutiveFails && failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			metrics.ProviderBreakerState.WithLabelValues(name).Set(stateValue(to))
			logger.Warn("Provider circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	}

	metrics.ProviderBreakerState.WithLabelValues(breakerName).Set(stateValue(gobreaker.StateClosed))

	return &CircuitBreaker{
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

// Execute runs fn unless the breaker refuses the call or ctx is already done.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	_, err := cb.cb.Execute(func() (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fn()
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		metrics.ProviderRejected.WithLabelValues(breakerName).Inc()
		cb.logger.Debug("Provider call refused, circuit open")
		return fmt.Errorf("service unavailable: %w", ErrCircuitOpen)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.ProviderRejected.WithLabelValues(breakerName).Inc()
		cb.logger.Debug("Provider call refused, half-open trial limit reached")
		return fmt.Errorf("service unavailable: too many requests while recovering: %w", ErrCircuitOpen)
	default:
		return err
	}
}

// GetState returns the current state of the circuit breaker.
func (cb *CircuitBreaker) GetState() api.HealthResponseCircuitBreakerState {
	switch cb.cb.State() {
	case gobreaker.StateHalfOpen:
		return api.HalfOpen
	case gobreaker.StateOpen:
		return api.Open
	default:
		return api.Closed
	}
}

// GetCounts returns the request and failure counts of the current interval.
func (cb *CircuitBreaker) GetCounts() (requests, failures uint32) {
	counts := cb.cb.Counts()
	return counts.Requests, counts.TotalFailures
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
