package cmd

import (
	"context"
	"fmt"

	"github.com/voyago/voyago/internal/agent"
	"github.com/voyago/voyago/internal/assist"
	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/config"
	"github.com/voyago/voyago/internal/i18n"
	"github.com/voyago/voyago/internal/log"
	"github.com/voyago/voyago/internal/resilience"
	"github.com/voyago/voyago/internal/store"
	"github.com/voyago/voyago/internal/stream"
	"github.com/voyago/voyago/internal/tools"
)

// stack bundles the shared services behind both the chat and serve commands.
// The latency model, fault injector and breaker registry are process-wide:
// every session shares them, so breaker state opened by one conversation is
// visible to all others.
type stack struct {
	cfg       *config.Config
	bookings  store.Bookings
	registry  *tools.Registry
	latency   *resilience.Latency
	faults    *resilience.FaultInjector
	breakers  *resilience.Breakers
	assistant *assist.Assistant
	logger    log.Logger
}

// buildStack loads configuration and assembles the tool pipeline:
// persistent store, latency and fault simulation, streaming orchestrator
// and the travel tool registry.
func buildStack(ctx context.Context, logger log.Logger) (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	i18n.Init(cfg.Language)

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	bookings, err := store.NewSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening booking store: %w", err)
	}

	latency := resilience.NewLatency(resilience.LatencyConfig{
		Min:  cfg.LatencyMin(),
		Max:  cfg.LatencyMax(),
		Seed: cfg.Seed,
	})
	faults := resilience.NewFaultInjector(resilience.FaultConfig{
		Probability: cfg.FaultProbability,
		Seed:        cfg.Seed,
	})

	orch, err := stream.New(
		component.NewGenerator(),
		latency,
		faults,
		bookings,
		logger.With("component", "orchestrator"),
	)
	if err != nil {
		_ = bookings.Close()
		return nil, fmt.Errorf("creating orchestrator: %w", err)
	}

	registry, err := tools.NewTravelRegistry(orch)
	if err != nil {
		_ = bookings.Close()
		return nil, fmt.Errorf("creating tool registry: %w", err)
	}

	s := &stack{
		cfg:      cfg,
		bookings: bookings,
		registry: registry,
		latency:  latency,
		faults:   faults,
		breakers: resilience.NewBreakers(resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.FailureThreshold,
			Cooldown:         cfg.Cooldown(),
		}),
		logger: logger,
	}

	// The generative responder is optional. Without an API key the chat
	// falls back to canned guidance.
	if cfg.AssistEnabled() {
		assistant, err := assist.New(ctx, cfg, logger.With("component", "assist"))
		if err != nil {
			logger.Warn("assistant unavailable, using fallback replies", "error", err)
		} else {
			s.assistant = assistant
		}
	}

	return s, nil
}

// newSession creates one conversation session. The retrier composes the
// shared latency model and fault injector, so retries and backoff engage in
// normal operation, not only when a tool genuinely fails. Breaker state is
// shared across all sessions through the stack's registry.
func (s *stack) newSession(opts ...agent.SessionOption) (*agent.Session, error) {
	retrier := resilience.NewRetrier(
		resilience.RetryConfig{
			MaxRetries: s.cfg.MaxRetries,
			BaseDelay:  s.cfg.BaseDelay(),
		},
		resilience.WithLatency(s.latency),
		resilience.WithFaultInjector(s.faults),
		resilience.WithRetryLogger(s.logger.With("component", "retrier")),
	)

	if s.assistant != nil {
		opts = append(opts, agent.WithResponder(s.assistant))
	}
	return agent.NewSession(s.registry, retrier, s.breakers, s.logger.With("component", "session"), opts...)
}

// Close releases the stack's resources.
func (s *stack) Close() error {
	return s.bookings.Close()
}
