package types

import "time"

// Default connection parameters. The backend is the field unit's Raspberry
// Pi, reachable on the local network under its mDNS name.
const (
	DefaultBackendURL     = "http://cloudtree.local:8000"
	DefaultRequestTimeout = 10 * time.Second
	DefaultPingTimeout    = 3 * time.Second
)

// Config holds the connection and storage parameters assembled by the CLI.
type Config struct {
	BackendURL     string        `json:"backend_url" yaml:"backend_url"`
	DataDir        string        `json:"data_dir" yaml:"data_dir"`
	OfflineMode    bool          `json:"offline_mode" yaml:"offline_mode"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
	PingTimeout    time.Duration `json:"ping_timeout" yaml:"ping_timeout"`
}

// Validate checks that the Config is well-formed, returning a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.BackendURL == "" {
		return ErrBackendURLEmpty
	}
	return nil
}

// WithDefaults fills zero-valued timeouts and backend URL with the defaults.
func (c Config) WithDefaults() Config {
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = DefaultPingTimeout
	}
	return c
}
