package resilience

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RetryConfig configures the retry executor.
type RetryConfig struct {
	MaxRetries int           // retry attempts after the first try; 0 disables retries, negative selects the default 3
	BaseDelay  time.Duration // backoff base; attempt k sleeps BaseDelay * 2^k (default: 1s)
}

// DefaultRetryConfig returns the defaults used by the session controller.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
	}
}

// SleepFunc suspends for d or returns early with ctx.Err() on cancellation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ctxSleep is the production sleep: a context-aware time.After wait.
func ctxSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("sleep interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// Retrier wraps operations with bounded retries and exponential backoff,
// composing the latency model and fault injector: each attempt first suspends
// for a latency sample, then may fail synthetically before the operation is
// ever invoked. The final attempt is never fault-injected, so a healthy
// operation always gets one honest try.
type Retrier struct {
	cfg     RetryConfig
	latency *Latency
	faults  *FaultInjector
	sleep   SleepFunc
	logger  *slog.Logger
}

// RetrierOption configures optional Retrier behavior.
type RetrierOption func(*Retrier)

// WithLatency attaches a latency model sampled before every attempt.
func WithLatency(l *Latency) RetrierOption {
	return func(r *Retrier) { r.latency = l }
}

// WithFaultInjector attaches a fault injector consulted before every attempt
// except the last.
func WithFaultInjector(fi *FaultInjector) RetrierOption {
	return func(r *Retrier) { r.faults = fi }
}

// WithSleep overrides the sleep function. Test use: record backoff delays
// without real waiting.
func WithSleep(fn SleepFunc) RetrierOption {
	return func(r *Retrier) { r.sleep = fn }
}

// WithRetryLogger attaches a logger for per-attempt debug output.
func WithRetryLogger(logger *slog.Logger) RetrierOption {
	return func(r *Retrier) { r.logger = logger }
}

// NewRetrier creates a retry executor. MaxRetries 0 is honored as "never
// retry"; only a negative value falls back to the default.
func NewRetrier(cfg RetryConfig, opts ...RetrierOption) *Retrier {
	def := DefaultRetryConfig()
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = def.BaseDelay
	}
	r := &Retrier{
		cfg:   cfg,
		sleep: ctxSleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do executes op with at most MaxRetries+1 invocations.
//
// Per attempt k = 0..MaxRetries: suspend one latency sample; if k is not the
// final attempt and the injector fires, the attempt fails with a classified
// fault without invoking op; otherwise op runs. A non-retryable failure stops
// immediately. Between failed attempts Do sleeps exactly BaseDelay * 2^k
// (no jitter). After the final attempt the most recent error is returned
// unwrapped, so callers can inspect its classification.
func (r *Retrier) Do(ctx context.Context, op func(context.Context) error) error {
	var lastErr error
	start := time.Now()

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if r.latency != nil {
			if err := r.sleep(ctx, r.latency.Sample()); err != nil {
				return err
			}
		}

		var err error
		if attempt < r.cfg.MaxRetries && r.faults != nil && r.faults.ShouldFail() {
			err = r.faults.Classify()
		} else {
			err = op(ctx)
		}
		if err == nil {
			if r.logger != nil {
				r.logger.Debug("operation succeeded",
					"attempts", attempt+1,
					"elapsed", time.Since(start),
				)
			}
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
		if attempt == r.cfg.MaxRetries {
			break
		}

		delay := r.cfg.BaseDelay << attempt
		if r.logger != nil {
			r.logger.Debug("retrying after error",
				"attempt", attempt+1,
				"delay", delay,
				"error", err,
			)
		}
		if err := r.sleep(ctx, delay); err != nil {
			return err
		}
	}

	return lastErr
}

// MaxAttempts returns the total invocation budget (retries + the first try).
func (r *Retrier) MaxAttempts() int {
	return r.cfg.MaxRetries + 1
}
