package common

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Registry    RegistryConfig `toml:"registry"`
	Gemini      GeminiConfig   `toml:"gemini"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// RegistryConfig contains the Finnish Trade Register (YTJ) open data API settings
type RegistryConfig struct {
	BaseURL   string `toml:"base_url"`   // Companies endpoint, queried with ?businessId=
	APIToken  string `toml:"api_token"`  // Optional bearer token
	Timeout   string `toml:"timeout"`    // HTTP request timeout as duration string (default: "30s")
	RateLimit int    `toml:"rate_limit"` // Outbound requests per second
}

// GeminiConfig contains Google Gemini API configuration for metrics extraction
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model identifier
	Timeout     string  `toml:"timeout"`     // Per-call timeout as duration string (default: "60s")
	Temperature float32 `toml:"temperature"` // Sampling temperature (default: 0)
	BaseURL     string  `toml:"base_url"`    // Optional API endpoint override (proxies, tests)
}

// DefaultRegistryURL is the public YTJ open data companies endpoint.
const DefaultRegistryURL = "https://avoindata.prh.fi/opendata-ytj-api/v3/companies"

// ErrGeminiNotConfigured is returned by ValidateGemini when extraction cannot run.
var ErrGeminiNotConfigured = errors.New("gemini is not configured")

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Registry: RegistryConfig{
			BaseURL:   DefaultRegistryURL,
			Timeout:   "30s",
			RateLimit: 10,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			Timeout:     "60s",
			Temperature: 0,
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority: default -> file1 -> file2 -> ... -> .env -> env
// Later files override earlier files. CLI flags are applied afterwards with ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// .env never overrides variables already present in the process environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("LEDGERLINE_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("LEDGERLINE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("LEDGERLINE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("LEDGERLINE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("LEDGERLINE_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Registry configuration (YTJ_* names kept for existing deployments)
	if baseURL := firstEnv("LEDGERLINE_REGISTRY_BASE_URL", "YTJ_API_URL"); baseURL != "" {
		config.Registry.BaseURL = baseURL
	}
	if token := firstEnv("LEDGERLINE_REGISTRY_API_TOKEN", "YTJ_API_KEY"); token != "" {
		config.Registry.APIToken = token
	}
	if timeout := os.Getenv("LEDGERLINE_REGISTRY_TIMEOUT"); timeout != "" {
		config.Registry.Timeout = timeout
	}
	if rateLimit := os.Getenv("LEDGERLINE_REGISTRY_RATE_LIMIT"); rateLimit != "" {
		if rl, err := strconv.Atoi(rateLimit); err == nil {
			config.Registry.RateLimit = rl
		}
	}

	// Gemini configuration (GEMINI_* names kept for existing deployments)
	if apiKey := firstEnv("LEDGERLINE_GEMINI_API_KEY", "GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := firstEnv("LEDGERLINE_GEMINI_MODEL", "GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if timeout := os.Getenv("LEDGERLINE_GEMINI_TIMEOUT"); timeout != "" {
		config.Gemini.Timeout = timeout
	}
	if temperature := os.Getenv("LEDGERLINE_GEMINI_TEMPERATURE"); temperature != "" {
		if t, err := strconv.ParseFloat(temperature, 32); err == nil {
			config.Gemini.Temperature = float32(t)
		}
	}
	if baseURL := os.Getenv("LEDGERLINE_GEMINI_BASE_URL"); baseURL != "" {
		config.Gemini.BaseURL = baseURL
	}
}

// firstEnv returns the value of the first non-empty environment variable in names
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ValidateGemini reports whether the extraction pipeline has what it needs to call the model
func (c *Config) ValidateGemini() error {
	var missing []string
	if c.Gemini.APIKey == "" {
		missing = append(missing, "api key (LEDGERLINE_GEMINI_API_KEY, GEMINI_API_KEY or gemini.api_key)")
	}
	if c.Gemini.Model == "" {
		missing = append(missing, "model (LEDGERLINE_GEMINI_MODEL, GEMINI_MODEL or gemini.model)")
	}
	if _, err := time.ParseDuration(c.Gemini.Timeout); err != nil {
		missing = append(missing, fmt.Sprintf("valid timeout (got %q)", c.Gemini.Timeout))
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrGeminiNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// RequestTimeout returns the parsed registry HTTP timeout, falling back to 30s
func (r RegistryConfig) RequestTimeout() time.Duration {
	return parseTimeout(r.Timeout, 30*time.Second)
}

// CallTimeout returns the parsed per-call Gemini timeout, falling back to 60s
func (g GeminiConfig) CallTimeout() time.Duration {
	return parseTimeout(g.Timeout, 60*time.Second)
}

func parseTimeout(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
