package model

import "time"

// User represents a registered account in the database.
type User struct {
	ID           int64
	Name         string
	DOB          string
	Email        string
	PasswordHash string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SignupRequest carries the registration form fields.
type SignupRequest struct {
	Name     string
	DOB      string
	Email    string
	Password string
}

// LoginRequest carries the password sign-in form fields.
type LoginRequest struct {
	Email    string
	Password string
}

// SetPasswordRequest carries the password reset form fields.
type SetPasswordRequest struct {
	Password        string
	ConfirmPassword string
}
