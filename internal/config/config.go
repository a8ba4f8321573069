package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	AuthSecret      string
	SummaryInterval time.Duration
	ShutdownTimeout time.Duration
	PendingPageSize int
}

const (
	defaultRunAddress      = ":8080"
	defaultAuthSecret      = "change-me-in-production"
	defaultSummaryInterval = time.Minute
	defaultShutdownTimeout = 10 * time.Second
	defaultPendingPageSize = 100
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		AuthSecret:      getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		SummaryInterval: getDuration(lookup, "SUMMARY_INTERVAL", defaultSummaryInterval),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		PendingPageSize: getInt(lookup, "PENDING_PAGE_SIZE", defaultPendingPageSize),
	}

	fs := flag.NewFlagSet("collections", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		summaryIntervalStr = cfg.SummaryInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing agent tokens")
	fs.StringVar(&summaryIntervalStr, "summary-interval", summaryIntervalStr, "Interval between pending-summary log lines")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.PendingPageSize, "page-size", cfg.PendingPageSize, "Page size for pending-order listings")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SummaryInterval, err = time.ParseDuration(summaryIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid summary interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.SummaryInterval <= 0 {
		cfg.SummaryInterval = defaultSummaryInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PendingPageSize <= 0 {
		cfg.PendingPageSize = defaultPendingPageSize
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
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
