package visitor

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// FieldLoginLocation names the sign-in location in validation errors.
const FieldLoginLocation = "login_location"

const maxLocationLen = 128

// Location names where a visitor signed in, e.g. "Watt" or "Cooper Library".
type Location string

// ParseLocation trims s and accepts 1 to 128 printable characters.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(FieldLoginLocation, "must not be empty")
	}
	if utf8.RuneCountInString(s) > maxLocationLen {
		return "", invalid(FieldLoginLocation, fmt.Sprintf("must be at most %d characters", maxLocationLen))
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return "", invalid(FieldLoginLocation, "must not contain control characters")
		}
	}
	return Location(s), nil
}

func (l Location) String() string { return string(l) }

// Visit is one sign-in/sign-out pair reported by the backend.
type Visit struct {
	VisitID     string `json:"visit_id"`
	VisitorID   string `json:"visitor_id"`
	SignInTime  int64  `json:"sign_in_time,omitempty"`
	SignOutTime int64  `json:"sign_out_time,omitempty"`
	DateVisited int64  `json:"date_visited,omitempty"`
	FirstVisit  bool   `json:"first_visit,omitempty"`
}

// TimeWindow bounds a visit query. Both ends are inclusive and sent as unix
// seconds.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow rejects windows whose start is after their end.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.After(end) {
		return TimeWindow{}, invalid("start_time", "must not be after end_time")
	}
	return TimeWindow{Start: start, End: end}, nil
}

// ToWire returns the query body understood by the visits endpoint.
func (w TimeWindow) ToWire() map[string]int64 {
	return map[string]int64{
		"start_time": w.Start.Unix(),
		"end_time":   w.End.Unix(),
	}
}
