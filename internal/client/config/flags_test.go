package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad(t *testing.T) {
	noEnv := func(string) (string, bool) { return "", false }
	withEnv := func(k string) (string, bool) {
		if k == EnvBaseURL {
			return "https://env.example.com", true
		}
		return "", false
	}

	tests := []struct {
		name     string
		args     []string
		env      func(string) (string, bool)
		expected *Config
	}{
		{
			name: "defaults",
			args: nil,
			env:  noEnv,
			expected: &Config{
				Timeout: 10 * time.Second, MaxAttempts: 3, BackoffBase: 200 * time.Millisecond, LogLevel: "info",
			},
		},
		{
			name: "env supplies base url",
			args: nil,
			env:  withEnv,
			expected: &Config{
				BaseURL: "https://env.example.com",
				Timeout: 10 * time.Second, MaxAttempts: 3, BackoffBase: 200 * time.Millisecond, LogLevel: "info",
			},
		},
		{
			name: "flags win over env",
			args: []string{"--base-url", "http://127.0.0.1:9090", "--allow-insecure", "--timeout", "2s", "--max-attempts", "5", "--backoff-base", "10ms", "--log-level", "debug", "--metrics-file", "/tmp/m.prom"},
			env:  withEnv,
			expected: &Config{
				BaseURL: "http://127.0.0.1:9090", AllowInsecure: true,
				Timeout: 2 * time.Second, MaxAttempts: 5, BackoffBase: 10 * time.Millisecond,
				LogLevel: "debug", MetricsFile: "/tmp/m.prom",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newFlagSet(t, tt.args...), tt.env)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoad_FileThenFlags(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"base_url":     "https://file.example.com",
		"max_attempts": 7,
	})

	cfg, err := Load(newFlagSet(t, "-c", path, "--max-attempts", "2"), func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.BaseURL)
	assert.Equal(t, 2, cfg.MaxAttempts)
}

func TestLoad_BadFile(t *testing.T) {
	_, err := Load(newFlagSet(t, "--config", "/does/not/exist.json"), func(string) (string, bool) { return "", false })
	assert.Error(t, err)
}
