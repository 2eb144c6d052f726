package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/logging"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/metrics"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/netx"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 3
	DefaultBackoffBase = 200 * time.Millisecond
	DefaultUserAgent   = "visitor-register"
)

// HTTPTransport sends a single request and returns the fully read response.
// Implementations must release the connection before returning and apply
// timeout to the whole exchange.
type HTTPTransport interface {
	Put(ctx context.Context, url string, header http.Header, body []byte, timeout time.Duration) (*netx.Response, error)
	Post(ctx context.Context, url string, header http.Header, body []byte, timeout time.Duration) (*netx.Response, error)
}

// Options configures a VisitorClient. Zero durations and counts select the
// defaults; negative values are rejected by New.
type Options struct {
	// Timeout bounds each attempt (connect + read).
	Timeout time.Duration
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int
	// BackoffBase is the first retry delay; later delays double.
	BackoffBase time.Duration
	// AllowInsecure permits http:// base URLs.
	AllowInsecure bool

	Transport HTTPTransport
	Logger    logging.Logger
	Metrics   *metrics.Metrics
	UserAgent string

	// Jitter overrides the random source of the backoff jitter.
	Jitter func(n int64) int64
	// OnStateChange, if set, observes every state machine transition.
	OnStateChange func(from, to State, attempt int)
}

func (o Options) withDefaults() Options {
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.BackoffBase == 0 {
		o.BackoffBase = DefaultBackoffBase
	}
	if o.Transport == nil {
		o.Transport = netx.NewTransport(nil)
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	return o
}

func (o Options) validate() error {
	switch {
	case o.Timeout < 0:
		return &ConfigurationError{Option: "timeout", Reason: "must not be negative"}
	case o.MaxAttempts < 0:
		return &ConfigurationError{Option: "max_attempts", Reason: "must not be negative"}
	case o.BackoffBase < 0:
		return &ConfigurationError{Option: "backoff_base", Reason: "must not be negative"}
	}
	return nil
}

// parseBaseURL checks scheme and host and strips trailing slashes.
func parseBaseURL(raw string, allowInsecure bool) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ConfigurationError{Option: "base_url", Reason: "must not be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", &ConfigurationError{Option: "base_url", Reason: "not a valid URL"}
	}
	switch u.Scheme {
	case "https":
	case "http":
		if !allowInsecure {
			return "", &ConfigurationError{Option: "base_url", Reason: "http:// requires allow-insecure"}
		}
	default:
		return "", &ConfigurationError{Option: "base_url", Reason: "scheme must be https"}
	}
	if u.Host == "" {
		return "", &ConfigurationError{Option: "base_url", Reason: "missing host"}
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", &ConfigurationError{Option: "base_url", Reason: "must not carry a query or fragment"}
	}
	if u.User != nil {
		return "", &ConfigurationError{Option: "base_url", Reason: "must not embed credentials"}
	}
	return strings.TrimRight(u.String(), "/"), nil
}
