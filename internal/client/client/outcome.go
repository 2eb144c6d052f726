package client

// Status is the terminal classification of a registration call.
type Status string

const (
	StatusAccepted         Status = "Accepted"
	StatusRejected         Status = "Rejected"
	StatusAlreadyExists    Status = "AlreadyExists"
	StatusTransportFailure Status = "TransportFailure"
)

// Outcome is the result of Register. Network faults and non-2xx answers are
// reported here rather than as errors.
type Outcome struct {
	Status Status
	// ServerMessage is the "message" string of the response body, if any.
	ServerMessage string
	// RawBody is the decoded JSON object with password fields removed, or nil
	// when the body was absent or not an object.
	RawBody map[string]any
	// HTTPStatus is the status code of the last attempt; 0 if none completed.
	HTTPStatus int
	Attempts   int
	// Err is the last transport error of a TransportFailure.
	Err error
}
