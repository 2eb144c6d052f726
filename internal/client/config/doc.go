// Package config loads runtime configuration for the visitor-register CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given by --config: JSON, or YAML when the name
//     ends in .yaml or .yml (see LoadFile).
//  3. Environment: VISITOR_BASE_URL (see ApplyEnv).
//  4. Command-line flags that were set explicitly (see RegisterFlags and
//     ApplyFlags).
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "base_url": "https://example.execute-api.us-east-1.amazonaws.com/api",
//	  "timeout": "10s",
//	  "max_attempts": 3,
//	  "backoff_base": "200ms",
//	  "allow_insecure": false,
//	  "log_level": "info"
//	}
//
// The password is never read from configuration.
package config
