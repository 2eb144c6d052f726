package client

import (
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MaxRetryAfter caps a server-requested Retry-After delay.
const MaxRetryAfter = 30 * time.Second

// maxShift keeps base<<shift from overflowing for large attempt counts.
const maxShift = 20

// Policy computes the delay before each retry.
type Policy struct {
	Base time.Duration
	// Jitter returns a uniform value in [0, n). Defaults to rand.Int64N.
	Jitter func(n int64) int64
}

// Backoff is the jitter-free delay before attempt k (1-indexed):
// zero for the first attempt, then Base * 2^(k-2).
func (p Policy) Backoff(k int) time.Duration {
	if k < 2 || p.Base <= 0 {
		return 0
	}
	shift := k - 2
	if shift > maxShift {
		shift = maxShift
	}
	return p.Base << shift
}

// Delay is Backoff(k) plus jitter in [0, Base). A larger retryAfter, capped
// at MaxRetryAfter, replaces the computed value.
func (p Policy) Delay(k int, retryAfter time.Duration) time.Duration {
	d := p.Backoff(k)
	if d > 0 {
		jitter := p.Jitter
		if jitter == nil {
			jitter = rand.Int64N
		}
		d += time.Duration(jitter(int64(p.Base)))
	}
	if retryAfter > MaxRetryAfter {
		retryAfter = MaxRetryAfter
	}
	if retryAfter > d {
		return retryAfter
	}
	return d
}

// ParseRetryAfter reads a Retry-After value given as delta-seconds or an
// HTTP-date. Dates in the past yield zero.
func ParseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		if secs < 0 {
			return 0, false
		}
		if secs > int64(MaxRetryAfter/time.Second) {
			return MaxRetryAfter, true
		}
		return time.Duration(secs) * time.Second, true
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return 0, false
	}
	if d := t.Sub(now); d > 0 {
		return d, true
	}
	return 0, true
}

// retryableStatus reports whether code may be re-attempted unchanged.
func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= 500 && code <= 599
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}
