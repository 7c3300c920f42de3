package calendar

import (
	"os"
	"strconv"
)

// GatewayConfig holds all configuration for the calendar gateway.
type GatewayConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Token      string
	TimeoutMs  int
	MaxRetries int
}

// DefaultConfig returns a GatewayConfig with sensible defaults.
// The gateway is disabled by default.
func DefaultConfig() GatewayConfig {
	return GatewayConfig{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:8799",
		TimeoutMs:  5000,
		MaxRetries: 1,
	}
}

// LoadConfig reads gateway configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() GatewayConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("CADENCE_CALENDAR_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CADENCE_CALENDAR_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CADENCE_CALENDAR_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CADENCE_CALENDAR_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("CADENCE_CALENDAR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CADENCE_CALENDAR_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}
