package stream

import (
	"fmt"
	"sync"
	"time"
)

// Session describes the pump's view of the device session at one moment.
type Session struct {
	Serial    string
	Connected bool
	Since     time.Time
	LastError error
}

// Status coordinates concurrent updates to the session snapshot. The pump
// goroutine writes, the UI context reads.
type Status struct {
	mu   sync.RWMutex
	snap Session
}

// SetConnected records a freshly opened session for the given device.
func (s *Status) SetConnected(serial string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Session{Serial: serial, Connected: true, Since: time.Now()}
}

// SetDisconnected marks the session ended. A nil err is a clean close; a
// non-nil err is kept for the status line but the previous history stays
// readable.
func (s *Status) SetDisconnected(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Connected = false
	if err != nil {
		s.snap.LastError = err
	}
}

// Snapshot returns a copy of the current session state.
func (s *Status) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap
	if s.snap.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snap.LastError)
	}
	return snap
}
