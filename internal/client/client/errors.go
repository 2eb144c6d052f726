package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrRejected      = errors.New("request rejected")
	ErrConfiguration = errors.New("invalid client configuration")

	// ErrNotRegistered is reported by SignIn and SignOut when no visitor is
	// bound to the hardware id (HTTP 402).
	ErrNotRegistered = errors.New("visitor not registered")
	// ErrNotSignedIn is reported by SignOut when the visitor has no sign-in
	// to close (HTTP 403).
	ErrNotSignedIn = errors.New("visitor never signed in")
)

// ConfigurationError is returned by New for an unusable base URL or option.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Option, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// RejectedError is returned by ListVisits, SignIn and SignOut when the
// backend refuses the request.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrRejected, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRejected, e.StatusCode, e.Message)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}
