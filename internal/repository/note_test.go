package repository

import (
	"testing"
)

func TestNewNoteRepository(t *testing.T) {
	repo := NewNoteRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil NoteRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestNoteSentinelError(t *testing.T) {
	if ErrNoteNotFound == nil {
		t.Fatal("ErrNoteNotFound should not be nil")
	}
	if ErrNoteNotFound.Error() != "note not found" {
		t.Fatalf("unexpected error message: %s", ErrNoteNotFound.Error())
	}
}

func TestNewOTPRepository(t *testing.T) {
	repo := NewOTPRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil OTPRepository")
	}
	if ErrCodeNotFound == nil {
		t.Fatal("ErrCodeNotFound should not be nil")
	}
}
