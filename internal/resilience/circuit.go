package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// CircuitState represents the state of the circuit breaker.
type CircuitState int

const (
	// CircuitClosed is the normal operation state.
	CircuitClosed CircuitState = iota
	// CircuitOpen rejects all requests until the cooldown elapses.
	CircuitOpen
	// CircuitHalfOpen allows test requests to check recovery.
	CircuitHalfOpen
)

// String returns the string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when a call is rejected without invoking the
// guarded operation.
var ErrCircuitOpen = errors.New("service unavailable: circuit breaker is open")

// CircuitBreakerConfig configures a breaker.
type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive failures before opening (default: 5)
	Cooldown         time.Duration // open duration before allowing a test request (default: 60s)
}

// DefaultCircuitBreakerConfig returns the defaults used by the controller.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		Cooldown:         60 * time.Second,
	}
}

// CircuitBreaker guards one downstream operation with a three-state breaker.
// Each guarded operation owns an independent breaker; the state is shared
// across concurrent callers and every transition happens under one mutex so
// concurrent outcomes cannot race.
//
// closed -> open once consecutive failures reach the threshold; open ->
// half-open after the cooldown elapses since the last failure; half-open ->
// closed on a success (counter reset) or back to open on a failure
// (timestamp refreshed, counter keeps accumulating).
type CircuitBreaker struct {
	mu sync.Mutex

	state       CircuitState
	failures    int
	lastFailure time.Time

	failureThreshold int
	cooldown         time.Duration
	now              func() time.Time // injectable clock for tests
}

// NewCircuitBreaker creates a breaker in the closed state.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	return &CircuitBreaker{
		state:            CircuitClosed,
		failureThreshold: cfg.FailureThreshold,
		cooldown:         cfg.Cooldown,
		now:              time.Now,
	}
}

// Allow checks whether a call may proceed. While open and before the cooldown
// elapses it returns ErrCircuitOpen immediately, protecting the degraded
// dependency from further load. The open -> half-open transition happens here,
// under the lock.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return nil
	case CircuitOpen:
		if cb.now().Sub(cb.lastFailure) > cb.cooldown {
			cb.state = CircuitHalfOpen
			return nil
		}
		return ErrCircuitOpen
	case CircuitHalfOpen:
		return nil
	}
	return nil
}

// Success records a successful call. A success while half-open closes the
// breaker and resets the failure counter.
func (cb *CircuitBreaker) Success() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitHalfOpen:
		cb.state = CircuitClosed
		cb.failures = 0
	case CircuitClosed:
		cb.failures = 0
	}
}

// Failure records a failed call.
func (cb *CircuitBreaker) Failure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()

	switch cb.state {
	case CircuitClosed:
		if cb.failures >= cb.failureThreshold {
			cb.state = CircuitOpen
		}
	case CircuitHalfOpen:
		cb.state = CircuitOpen
	}
}

// Do runs op under the breaker: Allow, then Success/Failure by outcome.
func (cb *CircuitBreaker) Do(ctx context.Context, op func(context.Context) error) error {
	if err := cb.Allow(); err != nil {
		return err
	}
	if err := op(ctx); err != nil {
		cb.Failure()
		return err
	}
	cb.Success()
	return nil
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the consecutive failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// Reset returns the breaker to the closed state. Primarily for tests.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = CircuitClosed
	cb.failures = 0
	cb.lastFailure = time.Time{}
}

// Breakers is a process-wide registry of breakers keyed by operation name.
// A circuit breaker models a shared downstream dependency, so every session
// hitting the same operation shares one breaker; breakers for different
// operations never share counters.
type Breakers struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig
	m   map[string]*CircuitBreaker
}

// NewBreakers creates a registry whose breakers use cfg.
func NewBreakers(cfg CircuitBreakerConfig) *Breakers {
	return &Breakers{
		cfg: cfg,
		m:   make(map[string]*CircuitBreaker),
	}
}

// Get returns the breaker for name, creating it on first use.
func (b *Breakers) Get(name string) *CircuitBreaker {
	b.mu.Lock()
	defer b.mu.Unlock()
	cb, ok := b.m[name]
	if !ok {
		cb = NewCircuitBreaker(b.cfg)
		b.m[name] = cb
	}
	return cb
}
