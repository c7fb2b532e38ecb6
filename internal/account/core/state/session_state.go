package state

import "sync"

// SessionState is the single owned cell for the gateway session's readiness
// flag and its most recent QR challenge. It is written only by the session
// lifecycle webhook and read by the query handlers; there is no other copy
// of this state in the process.
type SessionState struct {
	mu    sync.RWMutex
	ready bool
	qr    string
	qrSet bool
}

func NewSessionState() *SessionState {
	return &SessionState{}
}

func (s *SessionState) SetReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

func (s *SessionState) SetAuthFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = false
}

func (s *SessionState) SetQR(qr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qr = qr
	s.qrSet = true
}

func (s *SessionState) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// QR returns the latest challenge and whether one has been issued this
// process lifetime.
func (s *SessionState) QR() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.qr, s.qrSet
}
