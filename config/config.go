package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cardbot/database"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Guild used for command registration during development

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Economy configuration
	HouseUserID   int64         // Account that receives the house share of lottery pots
	TradeOfferTTL time.Duration // Lifetime of a pending trade offer

	// Dashboard configuration
	DashboardAddr  string
	DashboardToken string

	// NATS configuration
	NATSServers string // Comma-separated; empty disables event forwarding

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelServiceName          string
	OTelExportIntervalMillis int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// LoadDotEnv loads variables from a .env file if one exists. Variables already
// present in the environment are not overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// IsProduction reports whether the bot runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func load() (*Config, error) {
	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		TradeOfferTTL: 12 * time.Hour,

		DashboardAddr:  getEnvWithDefault("DASHBOARD_ADDR", ":8080"),
		DashboardToken: os.Getenv("DASHBOARD_TOKEN"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		OTelExporterType: getEnvWithDefault("OTEL_EXPORTER_TYPE", "none"),
		OTelOTLPEndpoint: getEnvWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelServiceName:  getEnvWithDefault("OTEL_SERVICE_NAME", "cardbot"),

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if enabled := os.Getenv("OTEL_ENABLED"); enabled != "" {
		parsed, err := strconv.ParseBool(enabled)
		if err != nil {
			return nil, fmt.Errorf("invalid OTEL_ENABLED %q: %w", enabled, err)
		}
		config.OTelEnabled = parsed
	}

	config.OTelExportIntervalMillis = 60000
	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		parsed, err := strconv.Atoi(interval)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid OTEL_EXPORT_INTERVAL_MS %q", interval)
		}
		config.OTelExportIntervalMillis = parsed
	}

	if house := os.Getenv("HOUSE_USER_ID"); house != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(house), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid HOUSE_USER_ID %q: %w", house, err)
		}
		config.HouseUserID = id
	}

	if ttl := os.Getenv("TRADE_OFFER_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid TRADE_OFFER_TTL %q", ttl)
		}
		config.TradeOfferTTL = parsed
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.HouseUserID <= 0 {
			return nil, fmt.Errorf("HOUSE_USER_ID is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:   "test",
		HouseUserID:   999999,
		TradeOfferTTL: 12 * time.Hour,
		DashboardAddr: ":0",
		LogLevel:      "debug",

		OTelExporterType:         "none",
		OTelServiceName:          "cardbot-test",
		OTelExportIntervalMillis: 1000,
	}
}
