package resilience

import (
	"errors"
	"fmt"
	"testing"
)

func TestFaultInjectorDisabled(t *testing.T) {
	t.Parallel()

	fi := NewFaultInjector(FaultConfig{Probability: 0, Seed: 1})
	for i := 0; i < 1000; i++ {
		if fi.ShouldFail() {
			t.Fatal("injector with probability 0 should never fail")
		}
	}
}

func TestFaultInjectorForced(t *testing.T) {
	t.Parallel()

	fi := NewFaultInjector(FaultConfig{Probability: 1, Seed: 1})
	for i := 0; i < 1000; i++ {
		if !fi.ShouldFail() {
			t.Fatal("injector with probability 1 should always fail")
		}
	}
}

func TestFaultInjectorProbabilityRoughlyHonored(t *testing.T) {
	t.Parallel()

	fi := NewFaultInjector(FaultConfig{Probability: 0.15, Seed: 7})
	failures := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		if fi.ShouldFail() {
			failures++
		}
	}
	// Loose statistical bound: 15% +- 5 points over 10k seeded trials.
	if failures < trials/10 || failures > trials/5 {
		t.Errorf("failures = %d of %d, want roughly 15%%", failures, trials)
	}
}

func TestClassifyCoversTaxonomy(t *testing.T) {
	t.Parallel()

	fi := NewFaultInjector(FaultConfig{Probability: 1, Seed: 3})
	seen := make(map[FaultKind]bool)
	for i := 0; i < 1000; i++ {
		f := fi.Classify()
		if f.Kind == FaultToolNotFound {
			t.Fatal("injector must never produce tool_not_found")
		}
		seen[f.Kind] = true
	}
	for _, kind := range []FaultKind{FaultNetwork, FaultTimeout, FaultServer, FaultValidation, FaultPayment} {
		if !seen[kind] {
			t.Errorf("kind %q never produced in 1000 draws", kind)
		}
	}
}

func TestRetryableFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind      FaultKind
		retryable bool
	}{
		{FaultNetwork, true},
		{FaultTimeout, true},
		{FaultServer, true},
		{FaultPayment, true},
		{FaultValidation, false},
		{FaultToolNotFound, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()

			f := NewFault(tt.kind, "msg")
			if f.Retryable != tt.retryable {
				t.Errorf("NewFault(%q).Retryable = %v, want %v", tt.kind, f.Retryable, tt.retryable)
			}
			if got := IsRetryable(f); got != tt.retryable {
				t.Errorf("IsRetryable(%q) = %v, want %v", tt.kind, got, tt.retryable)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	if IsRetryable(nil) {
		t.Error("nil error must not be retryable")
	}
	if !IsRetryable(errors.New("unclassified")) {
		t.Error("unclassified errors are treated as transient")
	}

	wrapped := fmt.Errorf("tool failed: %w", NewFault(FaultValidation, "bad input"))
	if IsRetryable(wrapped) {
		t.Error("wrapped validation fault must not be retryable")
	}
}

func TestFaultKindOf(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("outer: %w", NewFault(FaultPayment, "declined"))
	if got := FaultKindOf(wrapped); got != FaultPayment {
		t.Errorf("FaultKindOf = %q, want %q", got, FaultPayment)
	}
	if got := FaultKindOf(errors.New("plain")); got != FaultServer {
		t.Errorf("FaultKindOf(plain) = %q, want %q", got, FaultServer)
	}
}

func TestFaultError(t *testing.T) {
	t.Parallel()

	f := NewFault(FaultNetwork, "connection dropped")
	if got := f.Error(); got != "network: connection dropped" {
		t.Errorf("Error() = %q", got)
	}
}
