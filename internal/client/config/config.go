package config

import "time"

// Config holds runtime settings for the CallSecure CLI.
//
// Fields:
//   - StorageDriver: key/value backend, one of sqlite, postgres or memory.
//   - DatabaseDSN: data source name for the backend. A relative sqlite path
//     is resolved inside DataDir.
//   - DataDir: directory holding local state.
//   - SuccessDelay: pause between a successful sign-in and the dashboard.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	StorageDriver string
	DatabaseDSN   string
	DataDir       string
	SuccessDelay  time.Duration
	LogLevel      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.DatabaseDSN = "callsecure.db"
	c.DataDir = ".callsecure"
	c.SuccessDelay = 2 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
