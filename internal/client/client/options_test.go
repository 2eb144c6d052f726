package client

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BaseURL(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		allowInsecure bool
		want          string
		wantErr       bool
	}{
		{name: "https", url: "https://9bhfui3vn2.execute-api.us-east-1.amazonaws.com/api", want: "https://9bhfui3vn2.execute-api.us-east-1.amazonaws.com/api"},
		{name: "trailing slash", url: "https://api.example.com/api/", want: "https://api.example.com/api"},
		{name: "http refused", url: "http://localhost:8080", wantErr: true},
		{name: "http allowed", url: "http://localhost:8080", allowInsecure: true, want: "http://localhost:8080"},
		{name: "empty", url: "", wantErr: true},
		{name: "other scheme", url: "ftp://example.com", wantErr: true},
		{name: "no host", url: "https:///api", wantErr: true},
		{name: "query", url: "https://example.com/api?x=1", wantErr: true},
		{name: "credentials", url: "https://user:pw@example.com", wantErr: true},
		{name: "unparsable", url: "https://exa mple.com/%zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.url, Options{AllowInsecure: tt.allowInsecure})
			if tt.wantErr {
				var ce *ConfigurationError
				require.True(t, errors.As(err, &ce), "got %v", err)
				assert.Equal(t, "base_url", ce.Option)
				assert.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.BaseURL())
		})
	}
}

func TestNew_Options(t *testing.T) {
	c, err := New("https://example.com", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.opts.Timeout)
	assert.Equal(t, DefaultMaxAttempts, c.opts.MaxAttempts)
	assert.Equal(t, DefaultBackoffBase, c.opts.BackoffBase)
	assert.NotNil(t, c.opts.Transport)
	assert.NotNil(t, c.opts.Logger)

	for name, opts := range map[string]Options{
		"timeout":      {Timeout: -time.Second},
		"max_attempts": {MaxAttempts: -1},
		"backoff_base": {BackoffBase: -time.Millisecond},
	} {
		_, err := New("https://example.com", opts)
		var ce *ConfigurationError
		require.True(t, errors.As(err, &ce), name)
		assert.Equal(t, name, ce.Option)
	}
}
