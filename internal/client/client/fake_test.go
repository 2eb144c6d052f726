package client

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/netx"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/visitor"
)

type step struct {
	status int
	header http.Header
	body   string
	err    error
	// before runs when the step is served, e.g. to cancel the caller.
	before func()
}

type call struct {
	method  string
	url     string
	header  http.Header
	body    []byte
	timeout time.Duration
	at      time.Time
}

// fakeTransport serves scripted steps in order and repeats the last one.
type fakeTransport struct {
	mu     sync.Mutex
	steps  []step
	calls  []call
	closed bool
}

func newFake(steps ...step) *fakeTransport {
	return &fakeTransport{steps: steps}
}

func (f *fakeTransport) Put(ctx context.Context, url string, header http.Header, body []byte, timeout time.Duration) (*netx.Response, error) {
	return f.serve(http.MethodPut, url, header, body, timeout)
}

func (f *fakeTransport) Post(ctx context.Context, url string, header http.Header, body []byte, timeout time.Duration) (*netx.Response, error) {
	return f.serve(http.MethodPost, url, header, body, timeout)
}

func (f *fakeTransport) CloseIdleConnections() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeTransport) serve(method, url string, header http.Header, body []byte, timeout time.Duration) (*netx.Response, error) {
	f.mu.Lock()
	i := len(f.calls)
	f.calls = append(f.calls, call{
		method:  method,
		url:     url,
		header:  header.Clone(),
		body:    append([]byte(nil), body...),
		timeout: timeout,
		at:      time.Now(),
	})
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	s := f.steps[i]
	f.mu.Unlock()

	if s.before != nil {
		s.before()
	}
	if s.err != nil {
		return nil, s.err
	}
	h := s.header
	if h == nil {
		h = http.Header{}
	}
	return &netx.Response{StatusCode: s.status, Header: h, Body: []byte(s.body)}, nil
}

func (f *fakeTransport) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func noJitter(int64) int64 { return 0 }

func newTestClient(t *testing.T, tr HTTPTransport, opts Options) *VisitorClient {
	t.Helper()
	opts.Transport = tr
	if opts.BackoffBase == 0 {
		opts.BackoffBase = time.Millisecond
	}
	c, err := New("https://api.makerspace.test/api", opts)
	require.NoError(t, err)
	return c
}

// joe is the visitor from the captured integration request.
func joe(t *testing.T) (visitor.HardwareID, visitor.Record) {
	t.Helper()
	hw, err := visitor.ParseHardwareID("902100")
	require.NoError(t, err)
	rec, err := visitor.NewRecord("Joe", "Goldberg", "joe3@makerspace.com", "Computer Science", "Phd", "password")
	require.NoError(t, err)
	return hw, rec
}
