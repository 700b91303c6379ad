package config

import "time"

// Config holds runtime settings for the deepneumoscan CLI.
//
// Fields:
//   - BackendURL: base URL of the diagnostic backend.
//   - RequestTimeout: upper bound of every backend request.
//   - DatabasePath: SQLite file holding the local session.
//   - LogLevel: zap level name (debug, info, warn, error).
//   - DefaultLanguage: language used before anyone logs in.
type Config struct {
	BackendURL      string
	RequestTimeout  time.Duration
	DatabasePath    string
	LogLevel        string
	DefaultLanguage string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 20 * time.Second
	c.DatabasePath = "deepneumoscan.db"
	c.LogLevel = "warn"
	c.DefaultLanguage = "en"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and a .env file), JSON (if present) and command-line flags
// (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
