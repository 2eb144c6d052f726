package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/metrics"
	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/visitor"
)

func TestSignIn_Request(t *testing.T) {
	tr := newFake(step{status: http.StatusOK, body: `"Success"`})
	c := newTestClient(t, tr, Options{})

	require.NoError(t, c.SignIn(context.Background(), "220722", "Watt"))

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].method)
	assert.Equal(t, "https://api.makerspace.test/api/signin", calls[0].url)
	assert.JSONEq(t, `{"HardwareID":"220722","LoginLocation":"Watt"}`, string(calls[0].body))
	assert.NotEmpty(t, calls[0].header.Get(RequestIDHeader))
}

func TestSignOut_Request(t *testing.T) {
	tr := newFake(step{status: http.StatusOK, body: `"Success"`})
	c := newTestClient(t, tr, Options{})

	require.NoError(t, c.SignOut(context.Background(), "220722"))

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://api.makerspace.test/api/signout", calls[0].url)
	assert.JSONEq(t, `{"HardwareID":"220722"}`, string(calls[0].body))
}

func TestSignInSignOut_StatusMapping(t *testing.T) {
	signIn := func(c *VisitorClient) error { return c.SignIn(context.Background(), "000000", "Test") }
	signOut := func(c *VisitorClient) error { return c.SignOut(context.Background(), "000000") }

	tests := []struct {
		name    string
		do      func(*VisitorClient) error
		status  int
		body    string
		wantIs  []error
		wantNot []error
		message string
	}{
		{name: "sign in unknown visitor", do: signIn, status: 402, body: `{"Message":"User does not exist! "}`,
			wantIs: []error{ErrNotRegistered, ErrRejected}, message: "User does not exist!"},
		{name: "sign out unknown visitor", do: signOut, status: 402, body: `{"Message":"User does not exist! "}`,
			wantIs: []error{ErrNotRegistered, ErrRejected}},
		{name: "sign out without sign in", do: signOut, status: 403, body: `{"Message":"User never signed in! "}`,
			wantIs: []error{ErrNotSignedIn, ErrRejected}, wantNot: []error{ErrNotRegistered}, message: "User never signed in!"},
		{name: "sign in forbidden", do: signIn, status: 403,
			wantIs: []error{ErrRejected}, wantNot: []error{ErrNotSignedIn}},
		{name: "malformed", do: signOut, status: 401, body: `{"Message":"Error loading data. "}`,
			wantIs: []error{ErrRejected}, wantNot: []error{ErrNotRegistered, ErrNotSignedIn}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newFake(step{status: tt.status, body: tt.body})
			c := newTestClient(t, tr, Options{})

			err := tt.do(c)
			for _, target := range tt.wantIs {
				assert.ErrorIs(t, err, target)
			}
			for _, target := range tt.wantNot {
				assert.NotErrorIs(t, err, target)
			}
			var re *RejectedError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.status, re.StatusCode)
			if tt.message != "" {
				assert.Equal(t, tt.message, re.Message)
			}
			assert.Len(t, tr.Calls(), 1, "refusals are not retried")
		})
	}
}

func TestSignIn_RetriesThenUnavailable(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	tr := newFake(step{status: http.StatusServiceUnavailable})
	c := newTestClient(t, tr, Options{MaxAttempts: 3, Metrics: m})

	err := c.SignIn(context.Background(), "220722", "Watt")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Len(t, tr.Calls(), 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("sign_in", "unavailable")))
}

func TestSignOut_TransientThenSuccess(t *testing.T) {
	tr := newFake(step{status: http.StatusBadGateway}, step{status: http.StatusOK})
	c := newTestClient(t, tr, Options{})

	require.NoError(t, c.SignOut(context.Background(), "220722"))
	assert.Len(t, tr.Calls(), 2)
}

func TestSignIn_ValidatesBeforeSending(t *testing.T) {
	tr := newFake(step{status: http.StatusOK})
	c := newTestClient(t, tr, Options{})

	assert.ErrorIs(t, c.SignIn(context.Background(), "22-07", "Watt"), visitor.ErrValidation)
	assert.ErrorIs(t, c.SignIn(context.Background(), "220722", " "), visitor.ErrValidation)
	assert.ErrorIs(t, c.SignOut(context.Background(), ""), visitor.ErrValidation)
	assert.Empty(t, tr.Calls())
}
