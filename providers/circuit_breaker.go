package providers

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerSettings tunes CircuitBreakerGenerator. Zero values pick defaults.
type BreakerSettings struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// MinRequests and FailureRatio decide when the circuit opens.
	MinRequests  uint32
	FailureRatio float64
}

// CircuitBreakerGenerator fails fast while the wrapped generator keeps failing.
type CircuitBreakerGenerator struct {
	next TextGenerator
	cb   *gobreaker.CircuitBreaker[string]
	log  *zap.Logger
}

func NewCircuitBreakerGenerator(next TextGenerator, s BreakerSettings, log *zap.Logger) *CircuitBreakerGenerator {
	if s.Name == "" {
		s.Name = "gemini-api"
	}
	if s.MaxRequests == 0 {
		s.MaxRequests = 1
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.MinRequests == 0 {
		s.MinRequests = 5
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}
	if log == nil {
		log = zap.NewNop()
	}

	g := &CircuitBreakerGenerator{next: next, log: log}
	g.cb = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		// a cancelled caller says nothing about upstream health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return g
}

func (g *CircuitBreakerGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	text, err := g.cb.Execute(func() (string, error) {
		return g.next.GenerateContent(ctx, prompt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		g.log.Warn("generative api call rejected", zap.Error(err))
	}
	return text, err
}

// State exposes the breaker state for health reporting.
func (g *CircuitBreakerGenerator) State() gobreaker.State {
	return g.cb.State()
}

var _ TextGenerator = (*CircuitBreakerGenerator)(nil)
