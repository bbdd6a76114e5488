package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"freshtracker/internal/products"

	"github.com/shopspring/decimal"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultMigrationsPath  = "migrations/products"
	defaultShutdownTimeout = 10 * time.Second

	defaultDBMaxOpenConns    = 25
	defaultDBMaxIdleConns    = 5
	defaultDBConnMaxLifetime = 5 * time.Minute
	defaultDBPingTimeout     = 5 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

type Products struct {
	DatabaseURL       string
	RabbitMQURL       string
	HTTPAddr          string
	MigrationsPath    string
	ShutdownTimeout   time.Duration
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBPingTimeout     time.Duration
	ReadHeaderTimeout time.Duration

	Limits   products.Limits
	Defaults products.Defaults
}

func LoadProducts() (Products, error) {
	cfg := Products{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		HTTPAddr:          getEnv("HTTP_ADDR", defaultHTTPAddr),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", defaultMigrationsPath),
		ShutdownTimeout:   defaultShutdownTimeout,
		DBMaxOpenConns:    defaultDBMaxOpenConns,
		DBMaxIdleConns:    defaultDBMaxIdleConns,
		DBConnMaxLifetime: defaultDBConnMaxLifetime,
		DBPingTimeout:     defaultDBPingTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		Limits:            products.DefaultLimits(),
		Defaults:          products.DefaultDefaults(),
	}

	if cfg.DatabaseURL == "" {
		return Products{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RabbitMQURL == "" {
		return Products{}, fmt.Errorf("RABBITMQ_URL is required")
	}

	var err error
	if cfg.Limits.MinWeight, err = getEnvDecimal("MIN_WEIGHT", cfg.Limits.MinWeight); err != nil {
		return Products{}, err
	}
	if cfg.Limits.MaxWeight, err = getEnvDecimal("MAX_WEIGHT", cfg.Limits.MaxWeight); err != nil {
		return Products{}, err
	}
	if cfg.Limits.MaxThresholdDays, err = getEnvInt("MAX_THRESHOLD_DAYS", cfg.Limits.MaxThresholdDays); err != nil {
		return Products{}, err
	}
	if cfg.Defaults.ThresholdDays, err = getEnvInt("DEFAULT_THRESHOLD_DAYS", cfg.Defaults.ThresholdDays); err != nil {
		return Products{}, err
	}
	cfg.Defaults.Type = getEnv("DEFAULT_TYPE", cfg.Defaults.Type)

	if cfg.Limits.MaxWeight.LessThanOrEqual(cfg.Limits.MinWeight) {
		return Products{}, fmt.Errorf("MAX_WEIGHT must be greater than MIN_WEIGHT")
	}
	if cfg.Defaults.ThresholdDays < 1 || cfg.Defaults.ThresholdDays > cfg.Limits.MaxThresholdDays {
		return Products{}, fmt.Errorf("DEFAULT_THRESHOLD_DAYS must be between 1 and MAX_THRESHOLD_DAYS")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}
