package config

import (
	"fmt"
	"time"
)

// CurrentVersion is the only config schema understood by this build
const CurrentVersion = 1

// Defaults used when neither a flag nor the config file sets a value
const (
	DefaultServer          = "http://localhost:6279"
	DefaultAPIBase         = "/api"
	DefaultPollInterval    = 5 * time.Second
	DefaultTimeout         = 15 * time.Second
	DefaultDiscoverTimeout = 5 * time.Second
)

// Config is the user configuration file. It holds connection preferences
// only; session state is never persisted.
type Config struct {
	Version         int           `yaml:"version"`
	Server          string        `yaml:"server,omitempty"`           // Backend origin, e.g. http://mpd-host:6279
	APIBase         string        `yaml:"api_base,omitempty"`         // Path prefix of the switcher API
	PollInterval    time.Duration `yaml:"poll_interval,omitempty"`    // Current-mode refresh period
	Timeout         time.Duration `yaml:"timeout,omitempty"`          // Per-request HTTP timeout
	DiscoverTimeout time.Duration `yaml:"discover_timeout,omitempty"` // mDNS browse window
}

// New returns a Config populated with defaults
func New() *Config {
	return &Config{
		Version:         CurrentVersion,
		Server:          DefaultServer,
		APIBase:         DefaultAPIBase,
		PollInterval:    DefaultPollInterval,
		Timeout:         DefaultTimeout,
		DiscoverTimeout: DefaultDiscoverTimeout,
	}
}

// fillDefaults replaces unset fields with their defaults
func (c *Config) fillDefaults() {
	d := New()
	if c.Server == "" {
		c.Server = d.Server
	}
	if c.APIBase == "" {
		c.APIBase = d.APIBase
	}
	if c.PollInterval == 0 {
		c.PollInterval = d.PollInterval
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.DiscoverTimeout == 0 {
		c.DiscoverTimeout = d.DiscoverTimeout
	}
}

// Validate reports the first invalid field
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.DiscoverTimeout < 0 {
		return fmt.Errorf("discover_timeout must be positive, got %s", c.DiscoverTimeout)
	}
	return nil
}
