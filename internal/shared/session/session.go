package session

import (
	"encoding/json"

	"szabo-data/inkwell/internal/api"
)

// Flash kinds rendered by the page layer.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-time notice shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Session is the per-visitor session pair (credential, identity) plus queued
// flash notices. The credential and identity are stored together and treated
// as one unit: if either half is missing or unreadable the whole session
// counts as absent. All methods are nil-safe.
type Session struct {
	ID string

	token   string
	rawUser string
	flashes []Flash

	resolved  bool
	isNew     bool
	dirty     bool
	destroyed bool
}

// Resolved reports whether the session state is known. False means the
// backing store could not be reached when the request came in; guards must
// not make redirect decisions on an unresolved session.
func (s *Session) Resolved() bool {
	return s != nil && s.resolved
}

// pair enforces the session invariant: both halves present and the identity
// readable, or the session is absent.
func (s *Session) pair() (string, *api.User, bool) {
	if s == nil || s.destroyed || s.token == "" || s.rawUser == "" {
		return "", nil, false
	}
	var user api.User
	if err := json.Unmarshal([]byte(s.rawUser), &user); err != nil {
		return "", nil, false
	}
	return s.token, &user, true
}

// Credential returns the bearer token, if a complete session is present.
func (s *Session) Credential() (string, bool) {
	token, _, ok := s.pair()
	return token, ok
}

// Identity returns the authenticated identity, if a complete session is
// present. Malformed stored data reads as absent, never as an error.
func (s *Session) Identity() (*api.User, bool) {
	_, user, ok := s.pair()
	return user, ok
}

func (s *Session) IsAuthenticated() bool {
	_, _, ok := s.pair()
	return ok
}

func (s *Session) IsAdmin() bool {
	_, user, ok := s.pair()
	return ok && user.Role == api.RoleAdmin
}

// SetAuth establishes a session: both fields are written together, replacing
// any previous identity wholesale.
func (s *Session) SetAuth(token string, user api.User) error {
	if s == nil {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.token = token
	s.rawUser = string(raw)
	s.destroyed = false
	s.dirty = true
	return nil
}

// Clear removes credential and identity and marks the session destroyed so
// commit deletes the durable record and expires the cookie. Idempotent.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.token = ""
	s.rawUser = ""
	s.flashes = nil
	s.destroyed = true
	s.dirty = true
}

// AddFlash queues a notice for the next rendered page.
func (s *Session) AddFlash(kind, message string) {
	if s == nil {
		return
	}
	s.flashes = append(s.flashes, Flash{Kind: kind, Message: message})
	s.dirty = true
}

// PopFlashes returns and clears all queued notices.
func (s *Session) PopFlashes() []Flash {
	if s == nil || len(s.flashes) == 0 {
		return nil
	}
	flashes := s.flashes
	s.flashes = nil
	s.dirty = true
	return flashes
}
