package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/openclob/matchbook/internal/domain"
)

// Config holds all runtime configuration for the simulation binary.
// Prices are stored in cents; the PRICE_MIN / PRICE_MAX environment
// variables are given in dollars.
type Config struct {
	LogLevel      string
	Seed          int64
	Events        int
	DepthLevels   int
	PriceMin      int64 // cents
	PriceMax      int64 // cents
	MaxQty        int64
	TradesCSV     string
	DepthCSV      string
	SnapshotEvery int
}

// Load reads configuration from the environment, applies defaults, and
// validates values. A .env file in the working directory is loaded
// first if present; real environment variables take precedence.
func Load() (*Config, error) {
	// Missing .env is not an error.
	_ = godotenv.Load()

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	seed, err := getInt64("SEED", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED: %w", err)
	}

	events, err := getInt("EVENTS", 10000)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENTS: %w", err)
	}
	if events <= 0 {
		return nil, fmt.Errorf("invalid EVENTS: must be positive, got %d", events)
	}

	depthLevels, err := getInt("DEPTH_LEVELS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DEPTH_LEVELS: %w", err)
	}
	if depthLevels <= 0 {
		return nil, fmt.Errorf("invalid DEPTH_LEVELS: must be positive, got %d", depthLevels)
	}

	priceMin, err := getPrice("PRICE_MIN", 90.00)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_MIN: %w", err)
	}
	priceMax, err := getPrice("PRICE_MAX", 110.00)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_MAX: %w", err)
	}
	if priceMin <= 0 || priceMax <= priceMin {
		return nil, fmt.Errorf("invalid price band: PRICE_MIN must be positive and below PRICE_MAX")
	}

	maxQty, err := getInt64("MAX_QTY", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_QTY: %w", err)
	}
	if maxQty <= 0 {
		return nil, fmt.Errorf("invalid MAX_QTY: must be positive, got %d", maxQty)
	}

	snapshotEvery, err := getInt("SNAPSHOT_EVERY", 1000)
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_EVERY: %w", err)
	}
	if snapshotEvery <= 0 {
		return nil, fmt.Errorf("invalid SNAPSHOT_EVERY: must be positive, got %d", snapshotEvery)
	}

	return &Config{
		LogLevel:      logLevel,
		Seed:          seed,
		Events:        events,
		DepthLevels:   depthLevels,
		PriceMin:      priceMin,
		PriceMax:      priceMax,
		MaxQty:        maxQty,
		TradesCSV:     getStr("TRADES_CSV", "trades.csv"),
		DepthCSV:      getStr("DEPTH_CSV", "depth.csv"),
		SnapshotEvery: snapshotEvery,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getInt64(key string, defaultVal int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// getPrice reads a dollar amount from the environment and converts it
// to cents.
func getPrice(key string, defaultDollars float64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return domain.DollarsToCents(defaultDollars)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return domain.DollarsToCents(f)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
