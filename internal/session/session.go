// Package session implements the server-side session store: an in-process
// map of opaque cookie tokens to per-browser state. A session carries a
// tagged flow state so that OTP verification can only happen in the step
// that requested it, plus the authenticated identity once sign-in completes.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the browser cookie holding the opaque session token.
const CookieName = "notekeep_session"

// State tags the workflow step a session is in.
type State int

const (
	// StateAnonymous is the initial state: no pending flow, no identity.
	StateAnonymous State = iota
	// StateSignupPending means a signup payload is parked on the session
	// and the browser owes a signup OTP.
	StateSignupPending
	// StateLoginPending means an OTP login was requested and the browser
	// owes a login OTP.
	StateLoginPending
	// StateAuthenticated means the session carries a verified identity.
	StateAuthenticated
)

// SignupData is the pending registration payload parked on a session until
// the signup OTP is verified. The password is already hashed.
type SignupData struct {
	Name         string
	DOB          string
	Email        string
	PasswordHash string
}

// Session is the server-held state for one browser.
type Session struct {
	mu sync.Mutex

	token     string
	createdAt time.Time
	expiresAt time.Time

	state       State
	signup      *SignupData
	loginEmail  string
	userID      int64
	email       string
	forcedReset bool
}

// Token returns the opaque value stored in the browser cookie.
func (s *Session) Token() string { return s.token }

// BeginSignup parks a registration payload and moves the session to the
// awaiting-signup-OTP state. Any previous flow or identity is discarded.
func (s *Session) BeginSignup(data SignupData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.state = StateSignupPending
	s.signup = &data
}

// SignupData returns the pending registration payload. It reports false if
// the session is not awaiting a signup OTP.
func (s *Session) SignupData() (SignupData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSignupPending || s.signup == nil {
		return SignupData{}, false
	}
	return *s.signup, true
}

// CompleteSignup clears the pending payload and returns to anonymous. The
// user signs in afterwards; verification does not authenticate.
func (s *Session) CompleteSignup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSignupPending {
		s.reset()
	}
}

// BeginLogin records the email awaiting a login OTP.
func (s *Session) BeginLogin(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.state = StateLoginPending
	s.loginEmail = email
}

// LoginEmail returns the email awaiting a login OTP. It reports false if
// the session is not awaiting one.
func (s *Session) LoginEmail() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoginPending {
		return "", false
	}
	return s.loginEmail, true
}

// Authenticate moves the session to the authenticated state, clearing any
// pending flow. forcedReset marks sessions that must change their password
// before proceeding (OTP logins).
func (s *Session) Authenticate(userID int64, email string, forcedReset bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.state = StateAuthenticated
	s.userID = userID
	s.email = email
	s.forcedReset = forcedReset
}

// User returns the authenticated user ID and email. It reports false for
// unauthenticated sessions.
func (s *Session) User() (int64, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return 0, "", false
	}
	return s.userID, s.email, true
}

// IsAuthenticated reports whether the session carries a verified identity.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated
}

// ForcedReset reports whether the session still owes a password reset.
func (s *Session) ForcedReset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated && s.forcedReset
}

// ClearForcedReset marks the pending password reset as done.
func (s *Session) ClearForcedReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forcedReset = false
}

// reset drops flow state and identity. Callers must hold s.mu.
func (s *Session) reset() {
	s.state = StateAnonymous
	s.signup = nil
	s.loginEmail = ""
	s.userID = 0
	s.email = ""
	s.forcedReset = false
}

// Manager owns the token-to-session map. Sessions live for a fixed,
// non-sliding TTL from creation and are removed by an hourly sweep or by
// an explicit Destroy on logout.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager creates a session manager and starts its cleanup sweep.
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
	go m.cleanup()
	return m
}

// TTL returns the fixed session lifetime, used for the cookie max-age.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Create allocates a new anonymous session under a fresh opaque token.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		token:     uuid.NewString(),
		createdAt: now,
		expiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[s.token] = s
	m.mu.Unlock()

	return s
}

// Get returns the live session for a token. Expired sessions are dropped
// and reported as absent.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(s.expiresAt) {
		delete(m.sessions, token)
		return nil, false
	}
	return s, true
}

// Destroy removes a session so its token can no longer be used.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

func (m *Manager) cleanup() {
	for {
		time.Sleep(10 * time.Minute)
		now := time.Now()
		m.mu.Lock()
		for token, s := range m.sessions {
			if now.After(s.expiresAt) {
				delete(m.sessions, token)
			}
		}
		m.mu.Unlock()
	}
}
