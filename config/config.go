package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// HTTP server configuration
	Server ServerConfig

	// Background scanner configuration
	Scanner ScannerConfig

	// Quote source configuration
	Source SourceConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port                   string
	Environment            string // development or production
	LogLevel               string // debug, info, warn, error
	CORSAllowedOrigins     string
	ShutdownTimeoutSeconds int
}

// ScannerConfig holds background scanner configuration
type ScannerConfig struct {
	IntervalMinutes int
	MaxHistoryItems int
	MarketHoursOnly bool   // skip timer scans while the exchange is closed
	MarketMIC       string // ISO 10383 code for the trading calendar
}

// SourceConfig holds simulated quote source configuration
type SourceConfig struct {
	UniverseFile string  // optional YAML file overriding the built-in universe
	FailureRate  float64 // probability in [0,1] that a fetch fails
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:                   getEnvString("PORT", "8080"),
			Environment:            getEnvString("ENVIRONMENT", "development"),
			LogLevel:               getEnvString("LOG_LEVEL", "info"),
			CORSAllowedOrigins:     getEnvString("CORS_ALLOWED_ORIGINS", "*"),
			ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
		},
		Scanner: ScannerConfig{
			IntervalMinutes: getEnvInt("SCAN_INTERVAL_MINUTES", 15),
			MaxHistoryItems: getEnvInt("MAX_HISTORY_ITEMS", 100),
			MarketHoursOnly: getEnvBool("MARKET_HOURS_ONLY", false),
			MarketMIC:       getEnvString("MARKET_MIC", "xnse"),
		},
		Source: SourceConfig{
			UniverseFile: os.Getenv("UNIVERSE_FILE"),
			FailureRate:  getEnvFloat("SIMULATED_FAILURE_RATE", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Server.LogLevel)
	}

	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive, got %d", c.Server.ShutdownTimeoutSeconds)
	}

	if c.Scanner.IntervalMinutes <= 0 {
		return fmt.Errorf("SCAN_INTERVAL_MINUTES must be positive, got %d", c.Scanner.IntervalMinutes)
	}
	if c.Scanner.MaxHistoryItems <= 0 {
		return fmt.Errorf("MAX_HISTORY_ITEMS must be positive, got %d", c.Scanner.MaxHistoryItems)
	}

	if c.Source.FailureRate < 0 || c.Source.FailureRate > 1 {
		return fmt.Errorf("SIMULATED_FAILURE_RATE must be between 0 and 1, got %.2f", c.Source.FailureRate)
	}

	return nil
}

// IsProduction returns true if the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ScanInterval returns the scan interval as a duration
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.IntervalMinutes) * time.Minute
}

// ShutdownTimeout returns the graceful shutdown budget as a duration
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// HasUniverseFile returns true if a universe file override is configured
func (c *Config) HasUniverseFile() bool {
	return c.Source.UniverseFile != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil && parsed >= 0 && parsed <= 1 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                   "8080",
			Environment:            "development",
			LogLevel:               "info",
			CORSAllowedOrigins:     "*",
			ShutdownTimeoutSeconds: 10,
		},
		Scanner: ScannerConfig{
			IntervalMinutes: 15,
			MaxHistoryItems: 100,
			MarketHoursOnly: false,
			MarketMIC:       "xnse",
		},
		Source: SourceConfig{
			UniverseFile: "",
			FailureRate:  0,
		},
	}
}
