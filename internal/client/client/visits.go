package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/visitor"
)

const (
	opSignIn  = "sign_in"
	opSignOut = "sign_out"

	signInPath  = "/signin"
	signOutPath = "/signout"
)

// Card reader payloads use the device gateway's capitalized keys.
type signInRequest struct {
	HardwareID    string `json:"HardwareID"`
	LoginLocation string `json:"LoginLocation"`
}

type signOutRequest struct {
	HardwareID string `json:"HardwareID"`
}

// SignIn opens a visit for the visitor bound to hw with POST {base}/signin.
//
// The device endpoints usually live on their own stage, so the client is
// expected to be built with that stage as its base URL. A visitor the backend
// does not know yields ErrNotRegistered; exhausted retries yield
// ErrUnavailable.
func (c *VisitorClient) SignIn(ctx context.Context, hw visitor.HardwareID, loc visitor.Location) error {
	if _, err := visitor.ParseHardwareID(string(hw)); err != nil {
		return err
	}
	if _, err := visitor.ParseLocation(string(loc)); err != nil {
		return err
	}
	return c.visit(ctx, opSignIn, signInPath, hw, signInRequest{HardwareID: string(hw), LoginLocation: string(loc)})
}

// SignOut closes the most recent visit of the visitor bound to hw with
// POST {base}/signout. ErrNotSignedIn is reported when there is no visit to
// close.
func (c *VisitorClient) SignOut(ctx context.Context, hw visitor.HardwareID) error {
	if _, err := visitor.ParseHardwareID(string(hw)); err != nil {
		return err
	}
	return c.visit(ctx, opSignOut, signOutPath, hw, signOutRequest{HardwareID: string(hw)})
}

func (c *VisitorClient) visit(ctx context.Context, op, path string, hw visitor.HardwareID, req any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s: %w", op, err)
	}

	reqID := uuid.NewString()
	log := c.opts.Logger.With("operation", op, "request_id", reqID, "hardware_id", hw.String())

	ex := c.send(ctx, log, http.MethodPost, path, c.header(reqID), body, "")
	err = visitOutcome(op, ex)
	switch {
	case err == nil:
		c.opts.Metrics.IncrementOutcome(op, "ok")
		log.Info(ctx, "visit recorded", "attempts", ex.attempts)
	case errors.Is(err, ErrRejected):
		c.opts.Metrics.IncrementOutcome(op, "rejected")
		log.Warn(ctx, "visit rejected", "error", err)
	default:
		c.opts.Metrics.IncrementOutcome(op, "unavailable")
		log.Error(ctx, "visit failed", "error", err, "attempts", ex.attempts)
	}
	return err
}

func visitOutcome(op string, ex exchange) error {
	if ex.err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, ex.err)
	}
	if ex.resp == nil {
		return fmt.Errorf("%w: no attempt completed", ErrUnavailable)
	}

	code := ex.resp.StatusCode
	if retryableStatus(code) {
		return fmt.Errorf("%w: last status %d", ErrUnavailable, code)
	}
	if code >= 200 && code <= 299 {
		return nil
	}

	obj := decodeObject(ex.resp.Body)
	msg := stringField(obj, "message")
	if msg == "" {
		msg = stringField(obj, "Message")
	}
	rejected := &RejectedError{StatusCode: code, Message: strings.TrimSpace(msg)}
	switch {
	case code == http.StatusPaymentRequired:
		return fmt.Errorf("%w: %w", ErrNotRegistered, rejected)
	case code == http.StatusForbidden && op == opSignOut:
		return fmt.Errorf("%w: %w", ErrNotSignedIn, rejected)
	}
	return rejected
}
