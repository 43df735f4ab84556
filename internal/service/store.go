package service

import (
	"context"

	"github.com/notekeep/notekeep-go/internal/model"
)

// UserStore is the slice of user persistence the services need.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// OTPStore persists one-time codes keyed by email.
type OTPStore interface {
	Create(ctx context.Context, code *model.OneTimeCode) error
	GetByEmailAndCode(ctx context.Context, email, code string) (*model.OneTimeCode, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// NoteStore persists user-owned notes. Targeted reads and mutations take
// the owner so the store can refuse cross-user access.
type NoteStore interface {
	Create(ctx context.Context, note *model.Note) error
	ListByOwner(ctx context.Context, userID int64) ([]model.Note, error)
	ListByOwnerRecent(ctx context.Context, userID int64) ([]model.Note, error)
	GetByIDAndOwner(ctx context.Context, id, userID int64) (*model.Note, error)
	Update(ctx context.Context, id, userID int64, title, body string) error
	Delete(ctx context.Context, id, userID int64) error
}

// Notifier delivers one-time codes to an email address.
type Notifier interface {
	SendSignupOTP(toEmail, name, code string) error
	SendLoginOTP(toEmail, code string) error
}
