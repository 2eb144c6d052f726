// Package client is the HTTP client for the makerspace visitor endpoint.
//
// # Overview
//
//  1. VisitorClient.Register issues PUT {base}/visitors with
//     {"hardware_id": ..., "visitor": {...}} and classifies the answer as an
//     Outcome: Accepted, Rejected, AlreadyExists or TransportFailure.
//  2. VisitorClient.ListVisits issues POST {base}/visitors with a time window
//     and decodes the visits the backend recorded.
//  3. HTTPTransport abstracts the wire; netx.Transport is the net/http
//     implementation and tests substitute fakes.
//
// # Retries
//
// Transport errors and 408, 429 and 5xx answers are retried up to
// Options.MaxAttempts total attempts. The delay before attempt k is
// BackoffBase*2^(k-2) plus jitter in [0, BackoffBase); a longer Retry-After
// wins, capped at 30s. Each attempt is bounded by Options.Timeout.
//
// # Error Handling
//
// New returns *ConfigurationError (errors.Is ErrConfiguration). Register
// returns an error only for inputs not built by the visitor package; every
// network condition ends up in the Outcome. ListVisits uses ErrUnavailable
// and *RejectedError (errors.Is ErrRejected).
//
// The visitor password never reaches logs, errors or Outcome.RawBody.
package client
