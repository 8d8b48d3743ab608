package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Env variable names.
const (
	EnvAPIKey        = "ATTIO_API_KEY"
	EnvBaseURL       = "ATTIO_API_BASE_URL"
	EnvBearerToken   = "MCP_BEARER_TOKEN"
	EnvLogLevel      = "LOG_LEVEL"
	EnvTransport     = "MCP_TRANSPORT"
	EnvHost          = "MCP_HOST"
	EnvPort          = "MCP_PORT"
	EnvDefaultLimit  = "DEFAULT_LIMIT"
	EnvMaxLimit      = "MAX_LIMIT"
	EnvHTTPTimeout   = "HTTP_TIMEOUT_SECONDS"
	EnvDisabledTools = "DISABLED_TOOLS"
)

// Transport modes for the MCP server.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config holds application configuration, built once at startup and passed
// by reference into the Attio client and tool handlers.
type Config struct {
	// AttioAPIKey authenticates every request to the Attio API. Required.
	// Never logged.
	AttioAPIKey string

	// AttioBaseURL is the Attio API endpoint.
	AttioBaseURL string

	// BearerToken, when set, is required on every request to the SSE
	// transport. Empty disables transport auth (a warning is logged).
	BearerToken string

	// LogLevel is a zerolog level name (trace|debug|info|warn|error).
	LogLevel string

	// Transport selects the MCP transport: "stdio" or "sse".
	Transport string

	// Host and Port bind the SSE transport. Ignored for stdio.
	Host string
	Port int

	// DefaultLimit applies when a tool call omits limit or passes 0.
	DefaultLimit int

	// MaxLimit caps caller-requested limits to bound adapter and CRM load.
	MaxLimit int

	// HTTPTimeoutSeconds bounds each outgoing Attio request.
	HTTPTimeoutSeconds int

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AttioBaseURL:       "https://api.attio.com/v2",
		LogLevel:           "info",
		Transport:          TransportStdio,
		Host:               "0.0.0.0",
		Port:               8000,
		DefaultLimit:       20,
		MaxLimit:           100,
		HTTPTimeoutSeconds: 30,
	}
}

// FromEnv builds a Config from environment variables on top of defaults.
// Call godotenv.Load first if .env support is wanted; FromEnv reads only
// the process environment.
func FromEnv() (*Config, error) {
	cfg := DefaultConfig()

	cfg.AttioAPIKey = os.Getenv(EnvAPIKey)
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.AttioBaseURL = strings.TrimRight(v, "/")
	}
	cfg.BearerToken = os.Getenv(EnvBearerToken)
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvTransport); v != "" {
		cfg.Transport = strings.ToLower(v)
	}
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Host = v
	}

	intVars := []struct {
		env string
		dst *int
	}{
		{EnvPort, &cfg.Port},
		{EnvDefaultLimit, &cfg.DefaultLimit},
		{EnvMaxLimit, &cfg.MaxLimit},
		{EnvHTTPTimeout, &cfg.HTTPTimeoutSeconds},
	}
	for _, iv := range intVars {
		v := os.Getenv(iv.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", iv.env, v)
		}
		*iv.dst = n
	}

	if v := os.Getenv(EnvDisabledTools); v != "" {
		cfg.DisabledTools = splitList(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.AttioAPIKey == "" {
		return fmt.Errorf("%s is required", EnvAPIKey)
	}
	if c.Transport != TransportStdio && c.Transport != TransportSSE {
		return fmt.Errorf("%s must be %q or %q, got %q", EnvTransport, TransportStdio, TransportSSE, c.Transport)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%s must be in 1..65535, got %d", EnvPort, c.Port)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("%s must be positive, got %d", EnvDefaultLimit, c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("%s (%d) must be >= %s (%d)", EnvMaxLimit, c.MaxLimit, EnvDefaultLimit, c.DefaultLimit)
	}
	if c.HTTPTimeoutSeconds < 1 {
		return fmt.Errorf("%s must be positive, got %d", EnvHTTPTimeout, c.HTTPTimeoutSeconds)
	}
	return nil
}

// splitList splits a comma-separated list, trims whitespace, and removes
// empty entries and duplicates.
func splitList(s string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" && !seen[part] {
			seen[part] = true
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
