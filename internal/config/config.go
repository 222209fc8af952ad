package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/substratumservices/horizon-client/internal/validators"
)

// Config holds all application configuration
type Config struct {
	// Horizon settings
	HorizonURL     string        `validate:"required,http_url"`
	ClientName     string        `validate:"required"`
	RequestTimeout time.Duration `validate:"gt=0s"`

	// Rate limit settings, RateLimit of 0 disables the limiter
	RateLimit float64 `validate:"gte=0"`
	RateBurst int     `validate:"gte=1"`

	// Watch settings
	PollInterval time.Duration `validate:"gte=1s"`
	BaseReserve  decimal.Decimal `validate:"-"`

	// Storage settings
	CursorDir string `validate:"required"`

	// Metrics settings
	MetricsAddr string `validate:"omitempty,hostname_port"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		HorizonURL:     "https://horizon-testnet.stellar.org",
		ClientName:     "horizon-client",
		RequestTimeout: 30 * time.Second,
		RateLimit:      1,
		RateBurst:      5,
		PollInterval:   5 * time.Second,
		BaseReserve:    decimal.RequireFromString("0.5"),
		CursorDir:      "~/.horizon-client",
	}
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	if horizonURL := os.Getenv("HORIZON_URL"); horizonURL != "" {
		c.HorizonURL = horizonURL
	}

	if clientName := os.Getenv("HORIZON_CLIENT_NAME"); clientName != "" {
		c.ClientName = clientName
	}

	if timeout := os.Getenv("HORIZON_REQUEST_TIMEOUT"); timeout != "" {
		if d, ok := parseDuration(timeout); ok {
			c.RequestTimeout = d
		}
	}

	if limit := os.Getenv("HORIZON_RATE_LIMIT"); limit != "" {
		if l, err := strconv.ParseFloat(limit, 64); err == nil {
			c.RateLimit = l
		}
	}

	if burst := os.Getenv("HORIZON_RATE_BURST"); burst != "" {
		if b, err := strconv.Atoi(burst); err == nil {
			c.RateBurst = b
		}
	}

	if interval := os.Getenv("HORIZON_POLL_INTERVAL"); interval != "" {
		if d, ok := parseDuration(interval); ok {
			c.PollInterval = d
		}
	}

	if reserve := os.Getenv("HORIZON_BASE_RESERVE"); reserve != "" {
		if r, err := decimal.NewFromString(reserve); err == nil {
			c.BaseReserve = r
		}
	}

	if cursorDir := os.Getenv("HORIZON_CURSOR_DIR"); cursorDir != "" {
		c.CursorDir = cursorDir
	}

	if metricsAddr := os.Getenv("HORIZON_METRICS_ADDR"); metricsAddr != "" {
		c.MetricsAddr = metricsAddr
	}
}

// parseDuration accepts Go duration strings or a plain number of seconds
func parseDuration(value string) (time.Duration, bool) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, true
	}
	if s, err := strconv.Atoi(value); err == nil {
		return time.Duration(s) * time.Second, true
	}
	return 0, false
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validators.Struct(validators.NewValidator(), c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !c.BaseReserve.IsPositive() {
		return fmt.Errorf("base reserve must be positive, got: %s", c.BaseReserve)
	}

	return nil
}
