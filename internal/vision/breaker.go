package vision

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/metrics"
)

// ErrCircuitOpen is returned while the breaker rejects calls to the vision API
var ErrCircuitOpen = errors.New("vision API circuit breaker is open")

// BreakerSettings configures the breaker around an Extractor
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit when reached.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before half-opening.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings opens after 5 consecutive failures for 30 seconds
var DefaultBreakerSettings = BreakerSettings{ConsecutiveFailures: 5, OpenTimeout: 30 * time.Second}

// BreakerExtractor wraps an Extractor with a circuit breaker. Invalid images
// and images without ingredients do not count as failures.
type BreakerExtractor struct {
	next Extractor
	cb   *gobreaker.CircuitBreaker[[]string]
	log  *zap.Logger
}

// NewBreakerExtractor creates a new BreakerExtractor
func NewBreakerExtractor(next Extractor, settings BreakerSettings, log *zap.Logger) *BreakerExtractor {
	metrics.VisionBreakerState.Set(0)

	cb := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:        "vision-api",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoIngredientsDetected) || errors.Is(err, ErrInvalidImage)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("circuit breaker state transition",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.VisionBreakerState.Set(stateToFloat(to))
		},
	})

	return &BreakerExtractor{next: next, cb: cb, log: log}
}

// Extract calls the wrapped Extractor unless the circuit is open
func (b *BreakerExtractor) Extract(ctx context.Context, image []byte) ([]string, error) {
	ingredients, err := b.cb.Execute(func() ([]string, error) {
		return b.next.Extract(ctx, image)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.RecordVisionRequest("circuit_open", 0)
		b.log.Warn("vision request rejected by circuit breaker", zap.Error(err))
		return nil, errors.Join(ErrCircuitOpen, err)
	}
	return ingredients, err
}

// State reports the current breaker state
func (b *BreakerExtractor) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
