package client

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_BackoffDoublesAndNeverDecreases(t *testing.T) {
	p := Policy{Base: 200 * time.Millisecond}

	assert.Equal(t, time.Duration(0), p.Backoff(1))
	assert.Equal(t, 200*time.Millisecond, p.Backoff(2))
	assert.Equal(t, 400*time.Millisecond, p.Backoff(3))
	assert.Equal(t, 800*time.Millisecond, p.Backoff(4))

	prev := time.Duration(0)
	for k := 1; k <= 64; k++ {
		d := p.Backoff(k)
		assert.GreaterOrEqual(t, d, prev, "attempt %d", k)
		prev = d
	}
}

func TestPolicy_DelayJitterBounds(t *testing.T) {
	p := Policy{Base: 10 * time.Millisecond}

	for i := 0; i < 200; i++ {
		d := p.Delay(3, 0)
		assert.GreaterOrEqual(t, d, 20*time.Millisecond)
		assert.Less(t, d, 30*time.Millisecond)
	}
}

func TestPolicy_DelayUsesJitterSource(t *testing.T) {
	var gotN int64
	p := Policy{Base: 50 * time.Millisecond, Jitter: func(n int64) int64 {
		gotN = n
		return n - 1
	}}

	d := p.Delay(2, 0)
	assert.Equal(t, int64(50*time.Millisecond), gotN)
	assert.Equal(t, 100*time.Millisecond-time.Nanosecond, d)
}

func TestPolicy_DelayRetryAfter(t *testing.T) {
	p := Policy{Base: 100 * time.Millisecond, Jitter: noJitter}

	tests := []struct {
		name       string
		attempt    int
		retryAfter time.Duration
		want       time.Duration
	}{
		{name: "no header", attempt: 2, want: 100 * time.Millisecond},
		{name: "shorter than backoff", attempt: 3, retryAfter: 50 * time.Millisecond, want: 200 * time.Millisecond},
		{name: "longer than backoff", attempt: 2, retryAfter: 2 * time.Second, want: 2 * time.Second},
		{name: "capped", attempt: 2, retryAfter: time.Minute, want: MaxRetryAfter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Delay(tt.attempt, tt.retryAfter))
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		in     string
		want   time.Duration
		wantOK bool
	}{
		{name: "empty", in: ""},
		{name: "seconds", in: "3", want: 3 * time.Second, wantOK: true},
		{name: "zero", in: "0", want: 0, wantOK: true},
		{name: "huge seconds capped", in: "86400", want: MaxRetryAfter, wantOK: true},
		{name: "negative", in: "-1"},
		{name: "http date", in: now.Add(7 * time.Second).Format(http.TimeFormat), want: 7 * time.Second, wantOK: true},
		{name: "past date", in: now.Add(-time.Hour).Format(http.TimeFormat), want: 0, wantOK: true},
		{name: "garbage", in: "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRetryAfter(tt.in, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 501, 503, 599} {
		assert.True(t, retryableStatus(code), code)
	}
	for _, code := range []int{200, 301, 400, 404, 409, 499, 600} {
		assert.False(t, retryableStatus(code), code)
	}
}
