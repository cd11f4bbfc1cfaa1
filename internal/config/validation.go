package config

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidAddr indicates the listen address is empty.
	ErrInvalidAddr = errors.New("invalid listen address")

	// ErrInvalidRateLimit indicates the rate limit values are out of range.
	ErrInvalidRateLimit = errors.New("invalid rate limit")

	// ErrInvalidFaultProbability indicates the fault probability is outside [0, 1].
	ErrInvalidFaultProbability = errors.New("invalid fault probability")

	// ErrInvalidLatencyWindow indicates the latency bounds are invalid.
	ErrInvalidLatencyWindow = errors.New("invalid latency window")

	// ErrInvalidMaxRetries indicates the retry count is out of range.
	ErrInvalidMaxRetries = errors.New("invalid max retries")

	// ErrInvalidBaseDelay indicates the retry base delay is out of range.
	ErrInvalidBaseDelay = errors.New("invalid base delay")

	// ErrInvalidFailureThreshold indicates the breaker threshold is out of range.
	ErrInvalidFailureThreshold = errors.New("invalid failure threshold")

	// ErrInvalidCooldown indicates the breaker cooldown is out of range.
	ErrInvalidCooldown = errors.New("invalid cooldown")

	// ErrInvalidProvider indicates the assist provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrMissingAPIKey indicates a required API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")
)

// Validate checks all configuration values and fails fast on the first problem.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.Addr == "" {
		return fmt.Errorf("%w: address must not be empty", ErrInvalidAddr)
	}
	if c.RateLimitRPS < 1 || c.RateLimitBurst < c.RateLimitRPS {
		return fmt.Errorf("%w: rps=%d burst=%d (burst must be >= rps >= 1)",
			ErrInvalidRateLimit, c.RateLimitRPS, c.RateLimitBurst)
	}

	if c.FaultProbability < 0 || c.FaultProbability > 1 {
		return fmt.Errorf("%w: %g is outside [0, 1]", ErrInvalidFaultProbability, c.FaultProbability)
	}
	if c.LatencyMinMS < 0 || c.LatencyMaxMS < c.LatencyMinMS {
		return fmt.Errorf("%w: min=%dms max=%dms", ErrInvalidLatencyWindow, c.LatencyMinMS, c.LatencyMaxMS)
	}

	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("%w: %d is outside [0, 10]", ErrInvalidMaxRetries, c.MaxRetries)
	}
	if c.BaseDelayMS < 1 {
		return fmt.Errorf("%w: %dms must be at least 1ms", ErrInvalidBaseDelay, c.BaseDelayMS)
	}

	if c.FailureThreshold < 1 {
		return fmt.Errorf("%w: %d must be at least 1", ErrInvalidFailureThreshold, c.FailureThreshold)
	}
	if c.CooldownSeconds < 1 {
		return fmt.Errorf("%w: %ds must be at least 1s", ErrInvalidCooldown, c.CooldownSeconds)
	}

	switch c.Provider {
	case "", ProviderNone:
		// Offline simulation mode, nothing else to check.
	case ProviderGemini, ProviderGoogleAI:
		if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
			return fmt.Errorf("%w: set GEMINI_API_KEY for provider %q", ErrMissingAPIKey, c.Provider)
		}
	default:
		return fmt.Errorf("%w: %q (supported: none, gemini, googleai)", ErrInvalidProvider, c.Provider)
	}

	return nil
}
