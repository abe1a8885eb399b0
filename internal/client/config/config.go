package config

import "time"

// Backend selects which data path the app runs against.
type Backend string

const (
	// BackendLocal keeps accounts and comments entirely on-device.
	BackendLocal Backend = "local"
	// BackendRemote persists through the hosted REST API.
	BackendRemote Backend = "remote"
)

// Config holds runtime settings for the GameVault CLI.
//
// Fields:
//   - StorePath: SQLite DSN of the on-device prefs store.
//   - Backend: "local" or "remote".
//   - RemoteBaseURL: base URL of the hosted backend (remote mode only).
//   - RequestTimeout: per-request timeout for remote calls.
type Config struct {
	StorePath      string
	Backend        Backend
	RemoteBaseURL  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorePath = "gamevault.db"
	c.Backend = BackendLocal
	c.RemoteBaseURL = "https://gamevaultbackend.onrender.com"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
