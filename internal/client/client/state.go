package client

// State is a step of the per-call request state machine:
//
//	Idle → Sending → AwaitingResponse → (Parsed | Retrying → Sending …) → Terminal
type State int

const (
	StateIdle State = iota
	StateSending
	StateAwaitingResponse
	StateParsed
	StateRetrying
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateParsed:
		return "parsed"
	case StateRetrying:
		return "retrying"
	case StateTerminal:
		return "terminal"
	}
	return "unknown"
}
