package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerInitialState(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{})
	if cb.State() != CircuitClosed {
		t.Errorf("initial state = %v, want closed", cb.State())
	}
	if err := cb.Allow(); err != nil {
		t.Errorf("Allow on closed breaker returned %v", err)
	}
}

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, Cooldown: time.Minute})

	cb.Failure()
	cb.Failure()
	if cb.State() != CircuitClosed {
		t.Fatalf("state = %v after 2 failures, want closed", cb.State())
	}

	cb.Failure()
	if cb.State() != CircuitOpen {
		t.Fatalf("state = %v after 3 failures, want open", cb.State())
	}
}

func TestCircuitBreakerFailsFastWhileOpen(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, Cooldown: time.Minute})
	cb.Failure()

	calls := 0
	err := cb.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Do while open returned %v, want ErrCircuitOpen", err)
	}
	if calls != 0 {
		t.Errorf("guarded operation invoked %d times while open, want 0", calls)
	}
}

func TestCircuitBreakerHalfOpenAfterCooldown(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, Cooldown: time.Minute})

	base := time.Now()
	cb.now = func() time.Time { return base }
	cb.Failure()

	// Cooldown not yet elapsed.
	cb.now = func() time.Time { return base.Add(59 * time.Second) }
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Allow before cooldown returned %v, want ErrCircuitOpen", err)
	}

	// Cooldown elapsed: the next call goes through as a half-open probe.
	cb.now = func() time.Time { return base.Add(61 * time.Second) }
	if err := cb.Allow(); err != nil {
		t.Fatalf("Allow after cooldown returned %v, want nil", err)
	}
	if cb.State() != CircuitHalfOpen {
		t.Fatalf("state = %v after cooldown, want half-open", cb.State())
	}
}

func TestCircuitBreakerClosesOnHalfOpenSuccess(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, Cooldown: time.Millisecond})
	base := time.Now()
	cb.now = func() time.Time { return base }
	cb.Failure()

	cb.now = func() time.Time { return base.Add(time.Second) }
	if err := cb.Allow(); err != nil {
		t.Fatalf("Allow after cooldown returned %v", err)
	}

	cb.Success()
	if cb.State() != CircuitClosed {
		t.Errorf("state = %v after half-open success, want closed", cb.State())
	}
	if cb.Failures() != 0 {
		t.Errorf("failures = %d after close, want 0", cb.Failures())
	}
}

func TestCircuitBreakerReopensOnHalfOpenFailure(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, Cooldown: time.Millisecond})
	base := time.Now()
	cb.now = func() time.Time { return base }
	cb.Failure()
	cb.Failure()
	if cb.State() != CircuitOpen {
		t.Fatalf("state = %v, want open", cb.State())
	}

	cb.now = func() time.Time { return base.Add(time.Second) }
	if err := cb.Allow(); err != nil {
		t.Fatalf("Allow after cooldown returned %v", err)
	}

	cb.Failure()
	if cb.State() != CircuitOpen {
		t.Errorf("state = %v after half-open failure, want open", cb.State())
	}
	// Counter keeps accumulating across the half-open probe.
	if cb.Failures() != 3 {
		t.Errorf("failures = %d, want 3", cb.Failures())
	}
}

func TestCircuitBreakerDoRecordsOutcomes(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, Cooldown: time.Minute})

	boom := errors.New("boom")
	if err := cb.Do(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Do returned %v, want boom", err)
	}
	if cb.Failures() != 1 {
		t.Errorf("failures = %d, want 1", cb.Failures())
	}

	if err := cb.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Do returned %v, want nil", err)
	}
	if cb.Failures() != 0 {
		t.Errorf("failures = %d after success, want 0", cb.Failures())
	}
}

func TestBreakersRegistry(t *testing.T) {
	t.Parallel()

	reg := NewBreakers(CircuitBreakerConfig{FailureThreshold: 1, Cooldown: time.Minute})

	a := reg.Get("search_flights")
	b := reg.Get("search_flights")
	if a != b {
		t.Error("same operation name must share one breaker")
	}

	c := reg.Get("book_trip")
	if a == c {
		t.Error("different operations must not share a breaker")
	}

	a.Failure()
	if a.State() != CircuitOpen {
		t.Fatalf("state = %v, want open", a.State())
	}
	if c.State() != CircuitClosed {
		t.Error("breakers for different operations must not share counters")
	}
}
