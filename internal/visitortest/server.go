// Package visitortest provides an in-process fake of the makerspace visitor
// backend for tests. It deduplicates registrations the way the deployed API
// is assumed to, with the dedupe key left configurable.
package visitortest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/visitor"
)

// DedupeKey selects which request fields identify a registration.
type DedupeKey int

const (
	DedupeByHardwareAndEmail DedupeKey = iota
	DedupeByHardwareID
	DedupeByEmail
)

var wireFields = []string{
	visitor.FieldFirstName,
	visitor.FieldLastName,
	visitor.FieldEmail,
	visitor.FieldMajor,
	visitor.FieldDegreeType,
	visitor.FieldPassword,
}

// Request is a captured inbound request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Server is a TLS httptest server speaking the visitor API.
type Server struct {
	*httptest.Server

	key DedupeKey

	mu       sync.Mutex
	seen     map[string]string
	hardware map[string]string
	visits   []visitor.Visit
	requests []Request
	now      func() time.Time
}

// NewServer starts a server that is closed when t finishes.
func NewServer(t testing.TB, key DedupeKey) *Server {
	t.Helper()
	s := &Server{key: key, seen: make(map[string]string), hardware: make(map[string]string), now: time.Now}
	s.Server = httptest.NewTLSServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// AddVisit seeds a visit returned by the visit query.
func (s *Server) AddVisit(v visitor.Visit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = append(s.visits, v)
}

// Visits returns a copy of every visit, seeded or recorded by sign-in.
func (s *Server) Visits() []visitor.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]visitor.Visit(nil), s.visits...)
}

// VisitorID returns the id assigned to a registration key, if any.
func (s *Server) VisitorID(hardwareID, email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.seen[s.dedupeKey(hardwareID, email)]
	return id, ok
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: body})
	s.mu.Unlock()

	switch {
	case r.URL.Path == "/visitors" && r.Method == http.MethodPut:
		s.register(w, body)
	case r.URL.Path == "/visitors" && r.Method == http.MethodPost:
		s.listVisits(w, body)
	case r.URL.Path == "/signin" && r.Method == http.MethodPost:
		s.signIn(w, body)
	case r.URL.Path == "/signout" && r.Method == http.MethodPost:
		s.signOut(w, body)
	case r.URL.Path == "/visitors", r.URL.Path == "/signin", r.URL.Path == "/signout":
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	}
}

func (s *Server) register(w http.ResponseWriter, body []byte) {
	var req struct {
		HardwareID string            `json:"hardware_id"`
		Visitor    map[string]string `json:"visitor"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}
	if req.HardwareID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "missing hardware_id"})
		return
	}
	for _, f := range wireFields {
		if req.Visitor[f] == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "missing " + f})
			return
		}
	}
	if len(req.Visitor) != len(wireFields) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "unexpected visitor fields"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.dedupeKey(req.HardwareID, req.Visitor[visitor.FieldEmail])
	if id, ok := s.seen[k]; ok {
		writeJSON(w, http.StatusConflict, map[string]any{"status": "exists", "visitor_id": id})
		return
	}
	id := uuid.NewString()
	s.seen[k] = id
	s.hardware[req.HardwareID] = id
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "message": "registered", "visitor_id": id})
}

func (s *Server) listVisits(w http.ResponseWriter, body []byte) {
	var req struct {
		StartTime *int64 `json:"start_time"`
		EndTime   *int64 `json:"end_time"`
	}
	if err := json.Unmarshal(body, &req); err != nil || req.StartTime == nil || req.EndTime == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "start_time and end_time are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []visitor.Visit{}
	for _, v := range s.visits {
		if v.SignOutTime == 0 {
			continue
		}
		if v.SignInTime >= *req.StartTime && v.SignOutTime <= *req.EndTime {
			out = append(out, v)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Device endpoints answer with capitalized "Message" keys and a bare JSON
// string on success, like the deployed card reader gateway.
func (s *Server) signIn(w http.ResponseWriter, body []byte) {
	var req struct {
		HardwareID    string `json:"HardwareID"`
		LoginLocation string `json:"LoginLocation"`
	}
	if err := json.Unmarshal(body, &req); err != nil || req.HardwareID == "" || req.LoginLocation == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"Message": "Error loading data. "})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.hardware[req.HardwareID]
	if !ok {
		writeJSON(w, http.StatusPaymentRequired, map[string]any{"Message": "User does not exist! "})
		return
	}
	first := true
	for _, v := range s.visits {
		if v.VisitorID == id {
			first = false
			break
		}
	}
	now := s.now()
	s.visits = append(s.visits, visitor.Visit{
		VisitID:     uuid.NewString(),
		VisitorID:   id,
		SignInTime:  now.Unix(),
		DateVisited: now.Unix(),
		FirstVisit:  first,
	})
	writeJSON(w, http.StatusOK, "Success")
}

func (s *Server) signOut(w http.ResponseWriter, body []byte) {
	var req struct {
		HardwareID string `json:"HardwareID"`
	}
	if err := json.Unmarshal(body, &req); err != nil || req.HardwareID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"Message": "Error loading data. "})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.hardware[req.HardwareID]
	if !ok {
		writeJSON(w, http.StatusPaymentRequired, map[string]any{"Message": "User does not exist! "})
		return
	}
	for i := len(s.visits) - 1; i >= 0; i-- {
		if s.visits[i].VisitorID != id {
			continue
		}
		if s.visits[i].SignOutTime != 0 {
			break
		}
		s.visits[i].SignOutTime = s.now().Unix()
		writeJSON(w, http.StatusOK, "Success")
		return
	}
	writeJSON(w, http.StatusForbidden, map[string]any{"Message": "User never signed in! "})
}

func (s *Server) dedupeKey(hardwareID, email string) string {
	email = strings.ToLower(email)
	switch s.key {
	case DedupeByHardwareID:
		return hardwareID
	case DedupeByEmail:
		return email
	}
	return hardwareID + "\x00" + email
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
