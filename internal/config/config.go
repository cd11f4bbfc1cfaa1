// Package config provides application configuration management with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.voyago/config.yaml)
//  3. Default values (sensible defaults for quick start)
//
// Main configuration categories:
//   - Simulation: fault probability, latency window, retry and circuit breaker tuning
//   - Server: listen address, rate limiting, proxy trust
//   - Store: SQLite database path
//   - Assist: optional AI provider for free-form chat replies
//   - Observability: OTLP trace export
//
// Error Handling:
//   - Uses sentinel errors for Go-idiomatic error checking with errors.Is()
//   - Wrap with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Assist provider identifiers used in Config.Provider.
const (
	ProviderNone     = "none"
	ProviderGemini   = "gemini"
	ProviderGoogleAI = "googleai"
)

const (
	// DefaultModelName is the model used for free-form assistant replies.
	DefaultModelName = "gemini-2.5-flash"

	// configDirName is the per-user configuration directory under $HOME.
	configDirName = ".voyago"
)

// Config stores application configuration.
type Config struct {
	Language string `mapstructure:"language" json:"language"`

	// Server configuration (serve mode only)
	Addr           string `mapstructure:"addr" json:"addr"`
	RateLimitRPS   int    `mapstructure:"rate_limit_rps" json:"rate_limit_rps"`
	RateLimitBurst int    `mapstructure:"rate_limit_burst" json:"rate_limit_burst"`
	TrustProxy     bool   `mapstructure:"trust_proxy" json:"trust_proxy"` // Trust X-Real-IP/X-Forwarded-For (set true behind reverse proxy)

	// Simulation configuration
	FaultProbability float64 `mapstructure:"fault_probability" json:"fault_probability"`
	LatencyMinMS     int     `mapstructure:"latency_min_ms" json:"latency_min_ms"`
	LatencyMaxMS     int     `mapstructure:"latency_max_ms" json:"latency_max_ms"`
	Seed             int64   `mapstructure:"seed" json:"seed"` // 0 means time-based seeding

	// Retry configuration
	MaxRetries  int `mapstructure:"max_retries" json:"max_retries"`
	BaseDelayMS int `mapstructure:"base_delay_ms" json:"base_delay_ms"`

	// Circuit breaker configuration
	FailureThreshold int `mapstructure:"failure_threshold" json:"failure_threshold"`
	CooldownSeconds  int `mapstructure:"cooldown_seconds" json:"cooldown_seconds"`

	// Storage configuration
	SQLitePath string `mapstructure:"sqlite_path" json:"sqlite_path"`

	// Assist configuration (optional AI-backed chat replies)
	Provider  string `mapstructure:"provider" json:"provider"`
	ModelName string `mapstructure:"model_name" json:"model_name"`

	// Observability configuration
	OTLPEndpoint string `mapstructure:"otlp_endpoint" json:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name" json:"service_name"`
	Environment  string `mapstructure:"environment" json:"environment"`
	TraceEnabled bool   `mapstructure:"trace_enabled" json:"trace_enabled"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	configDir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// Dir returns the per-user configuration directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	configDir := filepath.Join(home, configDirName)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return configDir, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "pt-BR")

	// Server defaults
	v.SetDefault("addr", ":8080")
	v.SetDefault("rate_limit_rps", 10)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("trust_proxy", false)

	// Simulation defaults
	v.SetDefault("fault_probability", 0.15)
	v.SetDefault("latency_min_ms", 300)
	v.SetDefault("latency_max_ms", 1200)
	v.SetDefault("seed", 0)

	// Retry defaults
	v.SetDefault("max_retries", 3)
	v.SetDefault("base_delay_ms", 1000)

	// Circuit breaker defaults
	v.SetDefault("failure_threshold", 5)
	v.SetDefault("cooldown_seconds", 60)

	// Storage defaults (empty path resolves under the config directory)
	v.SetDefault("sqlite_path", "")

	// Assist defaults (simulation runs fully offline without a provider)
	v.SetDefault("provider", ProviderNone)
	v.SetDefault("model_name", DefaultModelName)

	// Observability defaults
	v.SetDefault("otlp_endpoint", "localhost:4318")
	v.SetDefault("service_name", "voyago")
	v.SetDefault("environment", "dev")
	v.SetDefault("trace_enabled", false)
}

// bindEnvVariables binds environment variable overrides explicitly.
func bindEnvVariables(v *viper.Viper) {
	// Helper to panic on unexpected bind errors (hardcoded strings can't fail)
	// If this panics, it's a BUG in our code, not a runtime error
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("language", "VOYAGO_LANG")
	mustBind("addr", "VOYAGO_ADDR")
	mustBind("trust_proxy", "VOYAGO_TRUST_PROXY")
	mustBind("fault_probability", "VOYAGO_FAULT_PROBABILITY")
	mustBind("seed", "VOYAGO_SEED")
	mustBind("sqlite_path", "VOYAGO_SQLITE_PATH")
	mustBind("provider", "VOYAGO_PROVIDER")
	mustBind("model_name", "VOYAGO_MODEL_NAME")
	mustBind("otlp_endpoint", "VOYAGO_OTLP_ENDPOINT")
	mustBind("trace_enabled", "VOYAGO_TRACE_ENABLED")

	// NOTE: GEMINI_API_KEY is read directly by Genkit, not via Viper.
	// Validation checks its presence when an AI provider is selected.
}

// LatencyMin returns the lower latency bound as a duration.
func (c *Config) LatencyMin() time.Duration {
	return time.Duration(c.LatencyMinMS) * time.Millisecond
}

// LatencyMax returns the upper latency bound as a duration.
func (c *Config) LatencyMax() time.Duration {
	return time.Duration(c.LatencyMaxMS) * time.Millisecond
}

// BaseDelay returns the retry base delay as a duration.
func (c *Config) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMS) * time.Millisecond
}

// Cooldown returns the circuit breaker cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// DatabasePath returns the SQLite file path, defaulting to the config directory.
func (c *Config) DatabasePath() (string, error) {
	if c.SQLitePath != "" {
		return c.SQLitePath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "voyago.db"), nil
}

// FullModelName returns the provider-qualified model name for Genkit.
// Example: "googleai/gemini-2.5-flash".
// If ModelName already contains a "/", it is returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	return ProviderGoogleAI + "/" + c.ModelName
}

// AssistEnabled reports whether an AI provider is configured for chat replies.
func (c *Config) AssistEnabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}
