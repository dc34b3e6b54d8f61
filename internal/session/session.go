// Package session implements the shared-passcode gate in front of the roster.
package session

import (
	"crypto/subtle"
	"time"
)

// Session is one browser's view of the gate. It becomes active only through
// Authenticate and stays active until End.
type Session struct {
	id        string
	passcode  string
	active    bool
	expiresAt time.Time
}

// New starts an inactive session that will accept passcode.
func New(id, passcode string) *Session {
	return &Session{id: id, passcode: passcode}
}

func (s *Session) ID() string { return s.id }

func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Authenticate compares the full passcode and activates the session on a match.
func (s *Session) Authenticate(passcode string) bool {
	if len(passcode) != len(s.passcode) {
		return false
	}
	ok := subtle.ConstantTimeCompare([]byte(passcode), []byte(s.passcode)) == 1
	if ok {
		s.active = true
	}
	return ok
}

func (s *Session) IsActive() bool { return s.active }

func restored(id string, expiresAt time.Time) *Session {
	return &Session{id: id, active: true, expiresAt: expiresAt}
}
