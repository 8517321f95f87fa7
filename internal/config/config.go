package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	ProcessorAddress   string
	ProcessorAPIKey    string
	WebhookSecret      string
	Currency           string
	TaxRate            decimal.Decimal
	DefaultDeliveryFee decimal.Decimal
	SyncInterval       time.Duration
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultCurrency        = "usd"
	defaultTaxRate         = "0.07"
	defaultDeliveryFee     = "50"
	defaultSyncInterval    = 15 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		ProcessorAddress: getString(lookup, "PROCESSOR_ADDRESS", ""),
		ProcessorAPIKey:  getString(lookup, "PROCESSOR_API_KEY", ""),
		WebhookSecret:    getString(lookup, "WEBHOOK_SECRET", ""),
		Currency:         getString(lookup, "CURRENCY", defaultCurrency),
		SyncInterval:     getDuration(lookup, "SYNC_INTERVAL", defaultSyncInterval),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		taxRateStr         = getString(lookup, "TAX_RATE", defaultTaxRate)
		deliveryFeeStr     = getString(lookup, "DEFAULT_DELIVERY_FEE", defaultDeliveryFee)
		syncIntervalStr    = cfg.SyncInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.ProcessorAddress, "p", cfg.ProcessorAddress, "Payment processor base URL")
	fs.StringVar(&cfg.ProcessorAPIKey, "api-key", cfg.ProcessorAPIKey, "Payment processor API key")
	fs.StringVar(&cfg.WebhookSecret, "webhook-secret", cfg.WebhookSecret, "Secret for verifying webhook signatures")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "Settlement currency code")
	fs.StringVar(&taxRateStr, "tax-rate", taxRateStr, "Sales tax rate applied to the subtotal")
	fs.StringVar(&deliveryFeeStr, "delivery-fee", deliveryFeeStr, "Delivery fee applied when the order carries none")
	fs.StringVar(&syncIntervalStr, "sync-interval", syncIntervalStr, "Interval between catalog sync runs (0 disables the worker)")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TaxRate, err = decimal.NewFromString(taxRateStr); err != nil {
		return nil, fmt.Errorf("invalid tax rate: %w", err)
	}
	if cfg.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must not be negative")
	}

	if cfg.DefaultDeliveryFee, err = decimal.NewFromString(deliveryFeeStr); err != nil {
		return nil, fmt.Errorf("invalid delivery fee: %w", err)
	}
	if cfg.DefaultDeliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}

	if cfg.SyncInterval, err = time.ParseDuration(syncIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sync interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if keyFile, ok := lookup("PROCESSOR_API_KEY_FILE"); ok && keyFile != "" {
		content, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read processor api key file: %w", err)
		}
		cfg.ProcessorAPIKey = string(content)
	}

	if cfg.SyncInterval < 0 {
		cfg.SyncInterval = defaultSyncInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.ProcessorAddress == "" {
		return nil, fmt.Errorf("payment processor address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
