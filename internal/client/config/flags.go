package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by every visitor-register command.
const (
	FlagConfig        = "config"
	FlagBaseURL       = "base-url"
	FlagTimeout       = "timeout"
	FlagMaxAttempts   = "max-attempts"
	FlagBackoffBase   = "backoff-base"
	FlagAllowInsecure = "allow-insecure"
	FlagLogLevel      = "log-level"
	FlagMetricsFile   = "metrics-file"
)

// RegisterFlags defines the configuration flags on fs, with defaults taken
// from LoadDefaults.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.String(FlagBaseURL, d.BaseURL, "visitor API base URL (env "+EnvBaseURL+")")
	fs.Duration(FlagTimeout, d.Timeout, "per-attempt timeout")
	fs.Int(FlagMaxAttempts, d.MaxAttempts, "total attempts including the first")
	fs.Duration(FlagBackoffBase, d.BackoffBase, "delay before the first retry; doubles per retry")
	fs.Bool(FlagAllowInsecure, d.AllowInsecure, "permit http:// base URLs")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagMetricsFile, d.MetricsFile, "write Prometheus metrics to this file on exit")
}

// ApplyFlags copies the flags the user set explicitly into cfg.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}

	set(FlagBaseURL, func() (e error) { cfg.BaseURL, e = fs.GetString(FlagBaseURL); return })
	set(FlagTimeout, func() (e error) { cfg.Timeout, e = fs.GetDuration(FlagTimeout); return })
	set(FlagMaxAttempts, func() (e error) { cfg.MaxAttempts, e = fs.GetInt(FlagMaxAttempts); return })
	set(FlagBackoffBase, func() (e error) { cfg.BackoffBase, e = fs.GetDuration(FlagBackoffBase); return })
	set(FlagAllowInsecure, func() (e error) { cfg.AllowInsecure, e = fs.GetBool(FlagAllowInsecure); return })
	set(FlagLogLevel, func() (e error) { cfg.LogLevel, e = fs.GetString(FlagLogLevel); return })
	set(FlagMetricsFile, func() (e error) { cfg.MetricsFile, e = fs.GetString(FlagMetricsFile); return })

	return err
}

// Load builds a Config from defaults, the --config file, the environment and
// explicitly set flags, in that order.
func Load(fs *pflag.FlagSet, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}
	if err := LoadFile(cfg, path); err != nil {
		return nil, err
	}
	ApplyEnv(cfg, lookupEnv)
	if err := ApplyFlags(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}
