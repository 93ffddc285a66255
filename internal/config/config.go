package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	Capacity    int
	RatePerHour decimal.Decimal
	JournalPath string
	MetricsFile string

	Environment string
	LogLevel    string
	NoColor     bool

	OTelEnabled     bool
	OTelServiceName string
	OTelEndpoint    string
}

func Load() (*Config, error) {
	rate, err := decimal.NewFromString(envOr("PARKING_RATE_PER_HOUR", "10.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid PARKING_RATE_PER_HOUR: %w", err)
	}

	_, noColor := os.LookupEnv("NO_COLOR")

	cfg := &Config{
		Capacity:        envOrInt("PARKING_CAPACITY", 5),
		RatePerHour:     rate,
		JournalPath:     envOr("PARKING_JOURNAL_PATH", "parking_Log.txt"),
		MetricsFile:     envOr("PARKING_METRICS_FILE", ""),
		Environment:     envOr("ENVIRONMENT", "development"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		NoColor:         noColor,
		OTelEnabled:     envOrBool("OTEL_ENABLED", false),
		OTelServiceName: envOr("OTEL_SERVICE_NAME", "parking-inventory"),
		OTelEndpoint:    envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate is exported so flag overrides applied after Load can be checked
// again.
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	if c.RatePerHour.IsNegative() {
		return fmt.Errorf("rate per hour cannot be negative, got %s", c.RatePerHour)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envOrBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
