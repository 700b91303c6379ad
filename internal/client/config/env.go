package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvBackendURL     = "DEEPNEUMOSCAN_BACKEND_URL"
	EnvRequestTimeout = "DEEPNEUMOSCAN_REQUEST_TIMEOUT"
	EnvDatabasePath   = "DEEPNEUMOSCAN_DB"
	EnvLogLevel       = "DEEPNEUMOSCAN_LOG_LEVEL"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first; it never overrides variables that are
// already set. Unset or empty variables leave the field untouched.
//
// The timeout accepts a Go duration ("15s") or a number of seconds ("15").
// Panics on an unparsable timeout, like the other stages.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvBackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			panic(fmt.Errorf("invalid %s: %w", EnvRequestTimeout, err))
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
