package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/logging"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/netx"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/visitor"
)

const (
	opRegister   = "register"
	opListVisits = "list_visits"

	visitorsPath = "/visitors"

	// RequestIDHeader carries a per-call id, constant across retries.
	RequestIDHeader = "X-Request-Id"
)

var (
	errRetryableStatus = errors.New("retryable status")
	errNoResponse      = errors.New("transport returned no response")
)

// VisitorClient talks to the makerspace visitor endpoint. It is safe for
// concurrent use; each call runs its attempts sequentially.
type VisitorClient struct {
	baseURL string
	opts    Options
	policy  Policy
}

type registration struct {
	HardwareID string            `json:"hardware_id"`
	Visitor    map[string]string `json:"visitor"`
}

// exchange is what the retry loop leaves behind for outcome mapping.
type exchange struct {
	resp     *netx.Response
	err      error
	attempts int
}

// New validates baseURL and opts. Failures are *ConfigurationError.
func New(baseURL string, opts Options) (*VisitorClient, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	base, err := parseBaseURL(baseURL, opts.AllowInsecure)
	if err != nil {
		return nil, err
	}

	return &VisitorClient{
		baseURL: base,
		opts:    opts,
		policy:  Policy{Base: opts.BackoffBase, Jitter: opts.Jitter},
	}, nil
}

// BaseURL returns the normalized endpoint root.
func (c *VisitorClient) BaseURL() string { return c.baseURL }

// Close releases idle connections held by the transport.
func (c *VisitorClient) Close() {
	if t, ok := c.opts.Transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
}

// Register submits v bound to hw with PUT {base}/visitors.
//
// The returned error is non-nil only for inputs that did not come from the
// visitor constructors. Every network condition and HTTP answer is reported
// through the Outcome.
func (c *VisitorClient) Register(ctx context.Context, hw visitor.HardwareID, v visitor.Record) (*Outcome, error) {
	if _, err := visitor.ParseHardwareID(string(hw)); err != nil {
		return nil, err
	}
	if v.IsZero() {
		return nil, &visitor.ValidationError{Field: "visitor", Reason: "must be built with visitor.NewRecord"}
	}

	body, err := json.Marshal(registration{HardwareID: string(hw), Visitor: v.ToWire()})
	if err != nil {
		return nil, fmt.Errorf("encode registration: %w", err)
	}

	reqID := uuid.NewString()
	log := c.opts.Logger.With("operation", opRegister, "request_id", reqID, "hardware_id", hw.String())
	log.Info(ctx, "registering visitor", "visitor", v)

	ex := c.send(ctx, log, http.MethodPut, visitorsPath, c.header(reqID), body, v.Password())
	out := registerOutcome(ex, v.Password())

	c.opts.Metrics.IncrementOutcome(opRegister, string(out.Status))
	log.Info(ctx, "registration finished",
		"status", out.Status,
		"attempts", out.Attempts,
		"http_status", out.HTTPStatus,
		"message", out.ServerMessage,
	)
	return out, nil
}

// ListVisits queries the visits recorded inside w with POST {base}/visitors.
// Exhausted retries yield an error wrapping ErrUnavailable; 4xx answers yield
// a *RejectedError.
func (c *VisitorClient) ListVisits(ctx context.Context, w visitor.TimeWindow) ([]visitor.Visit, error) {
	if _, err := visitor.NewTimeWindow(w.Start, w.End); err != nil {
		return nil, err
	}
	body, err := json.Marshal(w.ToWire())
	if err != nil {
		return nil, fmt.Errorf("encode time window: %w", err)
	}

	reqID := uuid.NewString()
	log := c.opts.Logger.With("operation", opListVisits, "request_id", reqID)

	ex := c.send(ctx, log, http.MethodPost, visitorsPath, c.header(reqID), body, "")
	visits, err := listOutcome(ex)
	switch {
	case err == nil:
		c.opts.Metrics.IncrementOutcome(opListVisits, "ok")
		log.Info(ctx, "visits listed", "count", len(visits), "attempts", ex.attempts)
	case errors.Is(err, ErrRejected):
		c.opts.Metrics.IncrementOutcome(opListVisits, "rejected")
		log.Warn(ctx, "visit query rejected", "error", err)
	default:
		c.opts.Metrics.IncrementOutcome(opListVisits, "unavailable")
		log.Error(ctx, "visit query failed", "error", err, "attempts", ex.attempts)
	}
	return visits, err
}

func (c *VisitorClient) header(reqID string) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("User-Agent", c.opts.UserAgent)
	h.Set(RequestIDHeader, reqID)
	return h
}

// send runs the attempt loop: at most MaxAttempts sequential attempts, retrying
// transport errors and 408/429/5xx answers after the policy delay.
func (c *VisitorClient) send(ctx context.Context, log logging.Logger, method, path string, header http.Header, body []byte, secret string) exchange {
	var ex exchange
	var retryAfter time.Duration
	sm := &machine{ctx: ctx, log: log, hook: c.opts.OnStateChange}
	url := c.baseURL + path

	backoff := retry.WithMaxRetries(uint64(c.opts.MaxAttempts-1), retry.BackoffFunc(func() (time.Duration, bool) {
		d := c.policy.Delay(ex.attempts+1, retryAfter)
		log.Debug(ctx, "backing off", "next_attempt", ex.attempts+1, "delay", d)
		return d, false
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		ex.attempts++
		ex.resp, ex.err, retryAfter = nil, nil, 0
		n := ex.attempts
		remaining := n < c.opts.MaxAttempts

		sm.to(StateSending, n)
		started := time.Now()
		sm.to(StateAwaitingResponse, n)
		resp, err := c.do(ctx, method, url, header.Clone(), body)
		elapsed := time.Since(started)
		if err == nil && resp == nil {
			err = errNoResponse
		}

		if err != nil {
			ex.err = err
			c.opts.Metrics.ObserveAttempt("transport_error", elapsed)
			if ctx.Err() != nil {
				return err
			}
			log.Warn(ctx, "attempt failed", "attempt", n, "error", err)
			if remaining {
				sm.to(StateRetrying, n)
			}
			return retry.RetryableError(err)
		}

		ex.resp = resp
		c.opts.Metrics.ObserveAttempt(statusClass(resp.StatusCode), elapsed)

		if !retryableStatus(resp.StatusCode) {
			sm.to(StateParsed, n)
			return nil
		}

		if d, ok := ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()); ok {
			retryAfter = d
		}
		log.Warn(ctx, "retryable response",
			"attempt", n,
			"http_status", resp.StatusCode,
			"body", loggableBody(resp.Body, secret),
		)
		if remaining {
			sm.to(StateRetrying, n)
		} else {
			sm.to(StateParsed, n)
		}
		return retry.RetryableError(errRetryableStatus)
	})

	if err != nil && ctx.Err() != nil {
		ex.err = ctx.Err()
	}
	sm.to(StateTerminal, ex.attempts)
	return ex
}

func (c *VisitorClient) do(ctx context.Context, method, url string, header http.Header, body []byte) (*netx.Response, error) {
	if method == http.MethodPut {
		return c.opts.Transport.Put(ctx, url, header, body, c.opts.Timeout)
	}
	return c.opts.Transport.Post(ctx, url, header, body, c.opts.Timeout)
}

func registerOutcome(ex exchange, secret string) *Outcome {
	out := &Outcome{Attempts: ex.attempts}

	if ex.err != nil || ex.resp == nil {
		out.Status = StatusTransportFailure
		out.Err = fmt.Errorf("%w: %w", ErrUnavailable, ex.err)
		if ex.err == nil {
			out.Err = fmt.Errorf("%w: no attempt completed", ErrUnavailable)
		}
		return out
	}

	code := ex.resp.StatusCode
	out.HTTPStatus = code
	out.RawBody = scrubObject(decodeObject(ex.resp.Body), secret)
	out.ServerMessage = stringField(out.RawBody, "message")

	switch {
	case retryableStatus(code):
		out.Status = StatusTransportFailure
		out.Err = fmt.Errorf("%w: last status %d", ErrUnavailable, code)
	case code >= 200 && code <= 299:
		out.Status = StatusAccepted
		if stringField(out.RawBody, "status") == "exists" {
			out.Status = StatusAlreadyExists
		}
	case code == http.StatusConflict:
		out.Status = StatusAlreadyExists
	default:
		out.Status = StatusRejected
	}
	return out
}

func listOutcome(ex exchange) ([]visitor.Visit, error) {
	if ex.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, ex.err)
	}
	if ex.resp == nil {
		return nil, fmt.Errorf("%w: no attempt completed", ErrUnavailable)
	}

	code := ex.resp.StatusCode
	switch {
	case retryableStatus(code):
		return nil, fmt.Errorf("%w: last status %d", ErrUnavailable, code)
	case code >= 200 && code <= 299:
		visits := []visitor.Visit{}
		if err := json.Unmarshal(ex.resp.Body, &visits); err != nil {
			return nil, fmt.Errorf("decode visits: %w", err)
		}
		return visits, nil
	}
	return nil, &RejectedError{StatusCode: code, Message: stringField(decodeObject(ex.resp.Body), "message")}
}

// machine tracks and reports state transitions of one call.
type machine struct {
	ctx   context.Context
	log   logging.Logger
	hook  func(from, to State, attempt int)
	state State
}

func (m *machine) to(next State, attempt int) {
	from := m.state
	m.state = next
	m.log.Debug(m.ctx, "state transition", "from", from.String(), "to", next.String(), "attempt", attempt)
	if m.hook != nil {
		m.hook(from, next, attempt)
	}
}
