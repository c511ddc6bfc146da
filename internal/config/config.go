package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the process-wide configuration.
type Config struct {
	AppName     string
	Environment string
	Version     string

	DBDriver string
	DBDSN    string

	LogLevel  string
	LogFormat string

	Tracing TracingConfig
	Ledger  LedgerConfig
	Shop    ShopConfig

	Scheduler SchedulerConfig
}

// SchedulerConfig drives the background worker.
type SchedulerConfig struct {
	SweepInterval time.Duration
	RunOnStart    bool
}

// ShopConfig is printed on receipts.
type ShopConfig struct {
	Name         string
	Currency     string
	FooterNotes  string
	PrimaryColor string
}

// TracingConfig controls OpenTelemetry export.
type TracingConfig struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

// LedgerConfig carries the billing policy knobs.
type LedgerConfig struct {
	// AllowNegativeStock lets a sale drive stock below zero (backorder).
	AllowNegativeStock      bool
	InstallmentIntervalDays int
	NumberingMaxAttempts    int
	Location                *time.Location
}

func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		AllowNegativeStock:      false,
		InstallmentIntervalDays: 30,
		NumberingMaxAttempts:    5,
		Location:                time.UTC,
	}
}

func (c LedgerConfig) WithDefaults() LedgerConfig {
	defaults := DefaultLedgerConfig()
	if c.InstallmentIntervalDays <= 0 {
		c.InstallmentIntervalDays = defaults.InstallmentIntervalDays
	}
	if c.NumberingMaxAttempts <= 0 {
		c.NumberingMaxAttempts = defaults.NumberingMaxAttempts
	}
	if c.Location == nil {
		c.Location = defaults.Location
	}
	return c
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_NAME", "railpos"),
		Environment: getenv("APP_ENV", "development"),
		Version:     getenv("APP_VERSION", "dev"),
		DBDriver:    strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
		DBDSN:       getenv("DB_DSN", "file:railpos.db?_foreign_keys=on"),
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getenv("LOG_FORMAT", "json")),
	}

	cfg.Shop = ShopConfig{
		Name:         getenv("SHOP_NAME", "RailPOS"),
		Currency:     strings.ToUpper(getenv("SHOP_CURRENCY", "USD")),
		FooterNotes:  getenv("SHOP_FOOTER_NOTES", ""),
		PrimaryColor: getenv("SHOP_PRIMARY_COLOR", ""),
	}

	var err error
	if cfg.Tracing.Enabled, err = getbool("TRACING_ENABLED", false); err != nil {
		return Config{}, err
	}
	cfg.Tracing.ExporterEndpoint = getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	cfg.Tracing.ExporterProtocol = getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	if cfg.Tracing.SamplingRatio, err = getfloat("TRACING_SAMPLING_RATIO", 0.1); err != nil {
		return Config{}, err
	}

	cfg.Scheduler = SchedulerConfig{SweepInterval: time.Hour, RunOnStart: true}
	if raw := getenv("SCHEDULER_SWEEP_INTERVAL", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("SCHEDULER_SWEEP_INTERVAL: invalid duration %q", raw)
		}
		cfg.Scheduler.SweepInterval = d
	}
	if cfg.Scheduler.RunOnStart, err = getbool("SCHEDULER_RUN_ON_START", cfg.Scheduler.RunOnStart); err != nil {
		return Config{}, err
	}

	ledger := DefaultLedgerConfig()
	if ledger.AllowNegativeStock, err = getbool("LEDGER_ALLOW_NEGATIVE_STOCK", ledger.AllowNegativeStock); err != nil {
		return Config{}, err
	}
	if ledger.InstallmentIntervalDays, err = getint("LEDGER_INSTALLMENT_INTERVAL_DAYS", ledger.InstallmentIntervalDays); err != nil {
		return Config{}, err
	}
	if ledger.NumberingMaxAttempts, err = getint("LEDGER_NUMBERING_MAX_ATTEMPTS", ledger.NumberingMaxAttempts); err != nil {
		return Config{}, err
	}
	if tz := getenv("LEDGER_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("LEDGER_TIMEZONE: %w", err)
		}
		ledger.Location = loc
	}
	cfg.Ledger = ledger.WithDefaults()

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return fallback
}

func getbool(key string, fallback bool) (bool, error) {
	raw := getenv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getint(key string, fallback int) (int, error) {
	raw := getenv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getfloat(key string, fallback float64) (float64, error) {
	raw := getenv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
