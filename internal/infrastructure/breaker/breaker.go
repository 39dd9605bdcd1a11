// Package breaker builds the circuit breakers wrapped around outbound providers.
package breaker

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"go-wedding/internal/logging"
	"go-wedding/internal/metrics"
)

// Config tunes a breaker. Zero fields fall back to the defaults below.
type Config struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
	// IsSuccessful reports errors that must not count as failures, such as a
	// rejected request the provider itself is healthy enough to answer.
	IsSuccessful func(err error) bool
}

const (
	defaultMaxRequests      = 1
	defaultInterval         = time.Minute
	defaultTimeout          = 30 * time.Second
	defaultFailureThreshold = 5
)

// New returns a breaker that trips after FailureThreshold consecutive failures
// and mirrors its state into metrics.ProviderBreakerState.
func New[T any](cfg Config) *gobreaker.CircuitBreaker[T] {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = defaultMaxRequests
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaultFailureThreshold
	}
	threshold := cfg.FailureThreshold

	metrics.ProviderBreakerState.WithLabelValues(cfg.Name).Set(stateValue(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: cfg.IsSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.ProviderBreakerState.WithLabelValues(name).Set(stateValue(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
