// Package netx holds the net/http plumbing behind the visitor client.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes bounds how much of a response body is read into memory.
const MaxBodyBytes = 1 << 20

// Response is a fully read HTTP response. The underlying connection has
// already been released when a Response is returned.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport issues JSON requests over an *http.Client and owns its
// connection pool.
type Transport struct {
	client *http.Client
}

// NewTransport wraps c. A nil c gets a dedicated client with its own pool.
func NewTransport(c *http.Client) *Transport {
	if c == nil {
		c = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	return &Transport{client: c}
}

func (t *Transport) Put(ctx context.Context, url string, header http.Header, body []byte, timeout time.Duration) (*Response, error) {
	return t.do(ctx, http.MethodPut, url, header, body, timeout)
}

func (t *Transport) Post(ctx context.Context, url string, header http.Header, body []byte, timeout time.Duration) (*Response, error) {
	return t.do(ctx, http.MethodPost, url, header, body, timeout)
}

// CloseIdleConnections releases pooled connections.
func (t *Transport) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}

func (t *Transport) do(ctx context.Context, method, url string, header http.Header, body []byte, timeout time.Duration) (*Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	// Drain what is left so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: b}, nil
}
