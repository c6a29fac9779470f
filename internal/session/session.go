// Package session holds the authenticated user's state. The API client takes
// an explicit *Session at construction instead of reading global storage, and
// reports a dead session through an observer callback rather than redirecting
// from inside the transport layer.
package session

import (
	"sync"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// Session is the client's view of the current authentication state. The zero
// value is the valid anonymous state that exists before login.
type Session struct {
	mu          sync.RWMutex
	token       string
	user        model.User
	invalidated []func()
}

// New returns a session primed with a token and user, e.g. one loaded from
// disk.
func New(token string, user model.User) *Session {
	return &Session{token: token, user: user}
}

// Token returns the bearer token, empty when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated user; the zero value when anonymous.
func (s *Session) User() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a token is present. It says nothing about
// whether the backend still accepts the token.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Establish replaces the session state after a successful login, register,
// or token refresh.
func (s *Session) Establish(token string, user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// OnInvalidate registers a callback to run when the session is invalidated
// (explicit logout or a 401 from the backend).
func (s *Session) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated = append(s.invalidated, fn)
}

// Invalidate clears the session and notifies observers. Safe to call on an
// already-anonymous session.
func (s *Session) Invalidate() {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = ""
	s.user = model.User{}
	observers := make([]func(), len(s.invalidated))
	copy(observers, s.invalidated)
	s.mu.Unlock()

	if !wasAuthenticated {
		return
	}
	for _, fn := range observers {
		fn()
	}
}
