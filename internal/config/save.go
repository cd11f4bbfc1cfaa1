package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// Save writes the configuration to ~/.voyago/config.yaml.
// A file lock guards against concurrent writers (serve and chat mode
// can run side by side against the same config directory).
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	dir, err := Dir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "config.yaml")

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking config file: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	data, err := yaml.Marshal(map[string]any{
		"language":          c.Language,
		"addr":              c.Addr,
		"rate_limit_rps":    c.RateLimitRPS,
		"rate_limit_burst":  c.RateLimitBurst,
		"trust_proxy":       c.TrustProxy,
		"fault_probability": c.FaultProbability,
		"latency_min_ms":    c.LatencyMinMS,
		"latency_max_ms":    c.LatencyMaxMS,
		"seed":              c.Seed,
		"max_retries":       c.MaxRetries,
		"base_delay_ms":     c.BaseDelayMS,
		"failure_threshold": c.FailureThreshold,
		"cooldown_seconds":  c.CooldownSeconds,
		"sqlite_path":       c.SQLitePath,
		"provider":          c.Provider,
		"model_name":        c.ModelName,
		"otlp_endpoint":     c.OTLPEndpoint,
		"service_name":      c.ServiceName,
		"environment":       c.Environment,
		"trace_enabled":     c.TraceEnabled,
	})
	if err != nil {
		return fmt.Errorf("marshaling configuration: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}
