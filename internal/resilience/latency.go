// Package resilience implements the simulated failure-handling core: a
// latency model, a fault injector, a retry executor with exponential backoff,
// and a circuit breaker. Randomness and sleeping are injectable so tests can
// force deterministic success, failure and timing.
package resilience

import (
	"math/rand"
	"sync"
	"time"
)

// Default latency bounds for simulated network calls.
const (
	DefaultMinLatency = 300 * time.Millisecond
	DefaultMaxLatency = 1200 * time.Millisecond
)

// LatencyConfig configures the latency model.
type LatencyConfig struct {
	Min  time.Duration // lower bound, inclusive (default: 300ms)
	Max  time.Duration // upper bound, inclusive (default: 1200ms)
	Seed int64         // RNG seed; 0 seeds from the current time
}

// Latency produces randomized delay samples within a closed interval,
// simulating variable network/service latency. Safe for concurrent use.
type Latency struct {
	mu  sync.Mutex
	rng *rand.Rand
	min time.Duration
	max time.Duration
}

// NewLatency creates a latency model. Zero-value bounds fall back to the
// defaults; an inverted interval is normalized by swapping.
func NewLatency(cfg LatencyConfig) *Latency {
	if cfg.Min <= 0 {
		cfg.Min = DefaultMinLatency
	}
	if cfg.Max <= 0 {
		cfg.Max = DefaultMaxLatency
	}
	if cfg.Max < cfg.Min {
		cfg.Min, cfg.Max = cfg.Max, cfg.Min
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Latency{
		rng: rand.New(rand.NewSource(seed)),
		min: cfg.Min,
		max: cfg.Max,
	}
}

// Sample returns a duration drawn uniformly from [Min, Max].
func (l *Latency) Sample() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.min + time.Duration(l.rng.Int63n(int64(l.max-l.min)+1))
}

// Bounds returns the configured closed interval.
func (l *Latency) Bounds() (min, max time.Duration) {
	return l.min, l.max
}
