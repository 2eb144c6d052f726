package config

import (
	"time"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/client"
)

// EnvBaseURL names the environment variable supplying the default base URL.
const EnvBaseURL = "VISITOR_BASE_URL"

// Config holds runtime settings for the visitor-register CLI.
//
// Units: Timeout and BackoffBase are time.Duration values.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	MaxAttempts   int
	BackoffBase   time.Duration
	AllowInsecure bool
	LogLevel      string
	MetricsFile   string
}

// LoadDefaults populates c with the client defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = ""
	c.Timeout = client.DefaultTimeout
	c.MaxAttempts = client.DefaultMaxAttempts
	c.BackoffBase = client.DefaultBackoffBase
	c.AllowInsecure = false
	c.LogLevel = "info"
	c.MetricsFile = ""
}

// ClientOptions maps c onto client.Options. Transport, logger and metrics are
// left for the caller to fill.
func (c *Config) ClientOptions() client.Options {
	return client.Options{
		Timeout:       c.Timeout,
		MaxAttempts:   c.MaxAttempts,
		BackoffBase:   c.BackoffBase,
		AllowInsecure: c.AllowInsecure,
	}
}
