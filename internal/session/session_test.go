package session

import (
	"testing"
	"time"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)

	s := m.Create()
	if s.Token() == "" {
		t.Fatal("expected a non-empty token")
	}

	got, ok := m.Get(s.Token())
	if !ok {
		t.Fatal("expected session to be retrievable")
	}
	if got != s {
		t.Fatal("expected the same session instance")
	}

	if _, ok := m.Get("no-such-token"); ok {
		t.Fatal("expected unknown token to miss")
	}
}

func TestManagerDistinctTokens(t *testing.T) {
	m := NewManager(time.Hour)
	if m.Create().Token() == m.Create().Token() {
		t.Fatal("expected distinct tokens")
	}
}

func TestManagerDestroy(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create()

	m.Destroy(s.Token())

	if _, ok := m.Get(s.Token()); ok {
		t.Fatal("expected destroyed session to be gone")
	}
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create()
	s.expiresAt = time.Now().Add(-time.Second)

	if _, ok := m.Get(s.Token()); ok {
		t.Fatal("expected expired session to be dropped")
	}
	// Expired sessions are removed on access, not just hidden.
	m.mu.Lock()
	_, present := m.sessions[s.Token()]
	m.mu.Unlock()
	if present {
		t.Fatal("expected expired session to be removed from the map")
	}
}

func TestSignupFlowState(t *testing.T) {
	s := &Session{}

	if _, ok := s.SignupData(); ok {
		t.Fatal("anonymous session must not report pending signup")
	}

	s.BeginSignup(SignupData{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})
	data, ok := s.SignupData()
	if !ok || data.Email != "alice@example.com" {
		t.Fatalf("expected pending signup payload, got %+v ok=%v", data, ok)
	}
	if s.IsAuthenticated() {
		t.Fatal("pending signup must not count as authenticated")
	}
	if _, ok := s.LoginEmail(); ok {
		t.Fatal("signup-pending session must not report a pending login")
	}

	s.CompleteSignup()
	if _, ok := s.SignupData(); ok {
		t.Fatal("expected signup payload to be cleared")
	}
	if s.IsAuthenticated() {
		t.Fatal("signup completion must not authenticate")
	}
}

func TestLoginFlowState(t *testing.T) {
	s := &Session{}

	if _, ok := s.LoginEmail(); ok {
		t.Fatal("anonymous session must not report pending login")
	}

	s.BeginLogin("alice@example.com")
	email, ok := s.LoginEmail()
	if !ok || email != "alice@example.com" {
		t.Fatalf("expected pending login email, got %q ok=%v", email, ok)
	}

	// Starting a signup abandons the pending login.
	s.BeginSignup(SignupData{Email: "bob@example.com"})
	if _, ok := s.LoginEmail(); ok {
		t.Fatal("expected pending login to be discarded by a new signup")
	}
}

func TestAuthenticateClearsPendingFlow(t *testing.T) {
	s := &Session{}
	s.BeginLogin("alice@example.com")

	s.Authenticate(7, "alice@example.com", false)

	userID, email, ok := s.User()
	if !ok || userID != 7 || email != "alice@example.com" {
		t.Fatalf("User() = (%d, %q, %v)", userID, email, ok)
	}
	if _, ok := s.LoginEmail(); ok {
		t.Fatal("expected pending login to be cleared on authenticate")
	}
	if s.ForcedReset() {
		t.Fatal("expected no forced reset")
	}
}

func TestForcedReset(t *testing.T) {
	s := &Session{}
	s.Authenticate(7, "alice@example.com", true)

	if !s.ForcedReset() {
		t.Fatal("expected forced reset after OTP authentication")
	}

	s.ClearForcedReset()
	if s.ForcedReset() {
		t.Fatal("expected forced reset to be cleared")
	}
	if !s.IsAuthenticated() {
		t.Fatal("clearing the reset must keep the session authenticated")
	}
}

func TestUserOnUnauthenticatedSession(t *testing.T) {
	s := &Session{}
	if _, _, ok := s.User(); ok {
		t.Fatal("anonymous session must not report an identity")
	}

	s.BeginSignup(SignupData{Email: "alice@example.com"})
	if _, _, ok := s.User(); ok {
		t.Fatal("signup-pending session must not report an identity")
	}
}
