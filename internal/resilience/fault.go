package resilience

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// FaultKind classifies a simulated failure.
type FaultKind string

// The failure taxonomy. Validation failures are never retryable: retrying
// the identical input cannot succeed. ToolNotFound is structural (a caller
// programming error) and is produced by the tool layer, not the injector.
const (
	FaultNetwork      FaultKind = "network"
	FaultTimeout      FaultKind = "timeout"
	FaultServer       FaultKind = "server"
	FaultValidation   FaultKind = "validation"
	FaultPayment      FaultKind = "payment"
	FaultToolNotFound FaultKind = "tool_not_found"
)

// Fault is a classified failure. It implements error so it can flow through
// the retry executor and the tool layer unchanged.
type Fault struct {
	Kind      FaultKind
	Message   string
	Retryable bool
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f == nil {
		return "<nil fault>"
	}
	if f.Message == "" {
		return string(f.Kind)
	}
	return string(f.Kind) + ": " + f.Message
}

// NewFault builds a fault with the canonical retryable flag for its kind.
func NewFault(kind FaultKind, message string) *Fault {
	return &Fault{
		Kind:      kind,
		Message:   message,
		Retryable: kind != FaultValidation && kind != FaultToolNotFound,
	}
}

// IsRetryable reports whether re-attempting the identical operation may
// succeed. Unclassified errors are treated as transient; only validation and
// tool_not_found failures are non-retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var f *Fault
	if errors.As(err, &f) {
		return f.Retryable
	}
	return true
}

// FaultKindOf extracts the fault kind from an error chain.
// Unclassified errors map to FaultServer.
func FaultKindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return FaultServer
}

// injectable is the taxonomy the injector draws from. ToolNotFound is
// excluded: it cannot occur spontaneously on a valid call.
var injectable = []struct {
	kind    FaultKind
	message string
}{
	{FaultNetwork, "simulated network failure"},
	{FaultTimeout, "simulated request timeout"},
	{FaultServer, "simulated internal server error"},
	{FaultValidation, "simulated validation rejection"},
	{FaultPayment, "simulated payment processor failure"},
}

// DefaultFaultProbability is the default chance of an injected failure.
const DefaultFaultProbability = 0.15

// FaultConfig configures the fault injector.
type FaultConfig struct {
	// Probability of failure per call, in [0, 1]. Use 0 to disable injection
	// and 1 to force every call to fail. Negative means "use default".
	Probability float64
	Seed        int64 // RNG seed; 0 seeds from the current time
}

// FaultInjector decides per call whether a simulated failure occurs
// (independent Bernoulli trials) and classifies synthetic failures into the
// taxonomy. Safe for concurrent use.
type FaultInjector struct {
	mu          sync.Mutex
	rng         *rand.Rand
	probability float64
}

// NewFaultInjector creates a fault injector.
func NewFaultInjector(cfg FaultConfig) *FaultInjector {
	p := cfg.Probability
	if p < 0 {
		p = DefaultFaultProbability
	}
	if p > 1 {
		p = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &FaultInjector{
		rng:         rand.New(rand.NewSource(seed)),
		probability: p,
	}
}

// ShouldFail reports whether the current call should fail. Trials are
// independent: there is no memory between calls.
func (fi *FaultInjector) ShouldFail() bool {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	if fi.probability <= 0 {
		return false
	}
	if fi.probability >= 1 {
		return true
	}
	return fi.rng.Float64() < fi.probability
}

// Classify selects a synthetic failure uniformly at random from the taxonomy.
func (fi *FaultInjector) Classify() *Fault {
	fi.mu.Lock()
	i := fi.rng.Intn(len(injectable))
	fi.mu.Unlock()
	return NewFault(injectable[i].kind, injectable[i].message)
}
