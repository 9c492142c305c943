package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cargo_underwriting/internal/domain/underwriting"

	"github.com/shopspring/decimal"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
)

type Config struct {
	Env  string
	Port string

	StoreDriver    string
	DatabaseURL    string
	QuotesTable    string
	AuditLogsTable string

	AWSRegion        string
	DynamoDBEndpoint string

	RedisURL            string
	AsynqQueue          string
	AsynqConcurrency    int
	ExpirationSweepCron string
	ReviewDrainCron     string

	AuditKafkaBrokers []string
	AuditKafkaTopic   string

	OTLPEndpoint string

	QuoteTTL         time.Duration
	ReviewBatchDelay time.Duration
	StoreCallTimeout time.Duration

	MaxShipmentValue    decimal.Decimal
	RestrictedCountries []string
	MaxCoverageDays     int
}

// Load reads the process environment. Callers import
// github.com/joho/godotenv/autoload so a local .env is picked up first.
func Load() (Config, error) {
	defaults := underwriting.DefaultRules()

	cfg := Config{
		Env:                 getenv("APP_ENV", "development"),
		Port:                getenv("PORT", "8080"),
		StoreDriver:         strings.ToLower(getenv("STORE_DRIVER", StoreDynamoDB)),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		QuotesTable:         getenv("QUOTES_TABLE", "quotes"),
		AuditLogsTable:      getenv("AUDIT_LOGS_TABLE", "quote_audit_logs"),
		AWSRegion:           getenv("AWS_REGION", "us-east-1"),
		DynamoDBEndpoint:    os.Getenv("DYNAMODB_ENDPOINT"),
		RedisURL:            os.Getenv("REDIS_URL"),
		AsynqQueue:          getenv("ASYNQ_QUEUE", "underwriting"),
		ExpirationSweepCron: getenv("EXPIRATION_SWEEP_CRON", "@every 1h"),
		ReviewDrainCron:     getenv("REVIEW_DRAIN_CRON", "@every 5m"),
		AuditKafkaBrokers:   splitList(os.Getenv("AUDIT_KAFKA_BROKERS")),
		AuditKafkaTopic:     getenv("AUDIT_KAFKA_TOPIC", "quote-audit-events"),
		OTLPEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		MaxShipmentValue:    defaults.MaxShipmentValue,
		RestrictedCountries: defaults.RestrictedCountries,
		MaxCoverageDays:     defaults.MaxCoverageDays,
	}

	var err error
	if cfg.AsynqConcurrency, err = getenvInt("ASYNQ_CONCURRENCY", 5); err != nil {
		return Config{}, err
	}
	if cfg.QuoteTTL, err = getenvDuration("QUOTE_TTL", 30*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ReviewBatchDelay, err = getenvDuration("REVIEW_BATCH_DELAY", 100*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.StoreCallTimeout, err = getenvDuration("STORE_CALL_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.MaxCoverageDays, err = getenvInt("UW_MAX_COVERAGE_DAYS", defaults.MaxCoverageDays); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("UW_MAX_SHIPMENT_VALUE"); v != "" {
		if cfg.MaxShipmentValue, err = decimal.NewFromString(v); err != nil {
			return Config{}, fmt.Errorf("UW_MAX_SHIPMENT_VALUE: %w", err)
		}
	}
	if v := os.Getenv("UW_RESTRICTED_COUNTRIES"); v != "" {
		cfg.RestrictedCountries = splitList(v)
	}

	switch cfg.StoreDriver {
	case StoreDynamoDB:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if !cfg.MaxShipmentValue.IsPositive() {
		return Config{}, fmt.Errorf("UW_MAX_SHIPMENT_VALUE must be positive")
	}
	if cfg.MaxCoverageDays < 1 {
		return Config{}, fmt.Errorf("UW_MAX_COVERAGE_DAYS must be at least 1")
	}

	return cfg, nil
}

// Rules returns the default rule set with the env overrides applied.
func (c Config) Rules() underwriting.Rules {
	rules := underwriting.DefaultRules()
	rules.MaxShipmentValue = c.MaxShipmentValue
	rules.RestrictedCountries = append([]string(nil), c.RestrictedCountries...)
	rules.MaxCoverageDays = c.MaxCoverageDays
	return rules
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
