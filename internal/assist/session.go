package assist

import (
	"time"

	"github.com/google/uuid"
)

// Status describes whether a session has a turn in flight.
type Status string

const (
	StatusIdle             Status = "idle"
	StatusAwaitingResponse Status = "awaiting-response"
)

// Session is the ordered conversation held while the assistant is open.
// History is append-only and chronological; entries are never reordered or
// mutated in place. A session lives in memory only and is discarded when
// the process exits.
//
// The session is owned by the engine driving it; no other component
// mutates it. At most one turn may be in flight at a time.
type Session struct {
	ID            string
	SelectedModel string
	CreatedAt     time.Time

	history []Message
	status  Status
}

// NewSession creates an empty idle session. An unknown model falls back to
// the default so a stale configured value cannot wedge the picker.
func NewSession(model string) *Session {
	if !SupportedModel(model) {
		model = DefaultModel
	}
	return &Session{
		ID:            uuid.New().String(),
		SelectedModel: model,
		CreatedAt:     time.Now(),
		status:        StatusIdle,
	}
}

// ShortID returns the shortened session ID (first 8 characters).
func (s *Session) ShortID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}

// Status returns whether a turn is currently in flight.
func (s *Session) Status() Status {
	return s.status
}

// BeginTurn marks the session as awaiting a response. It fails with
// ErrTurnInFlight if a turn is already in flight.
func (s *Session) BeginTurn() error {
	if s.status == StatusAwaitingResponse {
		return ErrTurnInFlight
	}
	s.status = StatusAwaitingResponse
	return nil
}

// EndTurn returns the session to idle. It is called unconditionally when a
// turn completes, whether it succeeded or failed.
func (s *Session) EndTurn() {
	s.status = StatusIdle
}

// Append adds a message to the history.
func (s *Session) Append(msg Message) {
	s.history = append(s.history, msg)
}

// History returns a copy of the conversation history in chronological
// order.
func (s *Session) History() []Message {
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// MessageCount returns the number of messages in the session.
func (s *Session) MessageCount() int {
	return len(s.history)
}

// LastCode returns the code snippet from the most recent assistant message
// that carried one.
func (s *Session) LastCode() (string, bool) {
	for i := len(s.history) - 1; i >= 0; i-- {
		m := s.history[i]
		if m.Role == RoleAssistant && m.HasCode() {
			return m.Code, true
		}
	}
	return "", false
}
