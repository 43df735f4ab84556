package service

import (
	"context"

	"github.com/notekeep/notekeep-go/internal/model"
	"github.com/notekeep/notekeep-go/internal/repository"
)

type fakeUserStore struct {
	users  []model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return repository.ErrUserNotFound
}

type fakeOTPStore struct {
	codes  []model.OneTimeCode
	nextID int64
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{nextID: 1}
}

func (f *fakeOTPStore) Create(ctx context.Context, code *model.OneTimeCode) error {
	code.ID = f.nextID
	f.nextID++
	f.codes = append(f.codes, *code)
	return nil
}

func (f *fakeOTPStore) GetByEmailAndCode(ctx context.Context, email, code string) (*model.OneTimeCode, error) {
	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].Email == email && f.codes[i].Code == code {
			c := f.codes[i]
			return &c, nil
		}
	}
	return nil, repository.ErrCodeNotFound
}

func (f *fakeOTPStore) DeleteByEmail(ctx context.Context, email string) error {
	kept := f.codes[:0]
	for _, c := range f.codes {
		if c.Email != email {
			kept = append(kept, c)
		}
	}
	f.codes = kept
	return nil
}

func (f *fakeOTPStore) countByEmail(email string) int {
	n := 0
	for _, c := range f.codes {
		if c.Email == email {
			n++
		}
	}
	return n
}

type sentMail struct {
	to   string
	code string
	kind string
}

type fakeNotifier struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeNotifier) SendSignupOTP(toEmail, name, code string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: toEmail, code: code, kind: "signup"})
	return nil
}

func (f *fakeNotifier) SendLoginOTP(toEmail, code string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: toEmail, code: code, kind: "login"})
	return nil
}

func (f *fakeNotifier) lastCode() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].code
}

type fakeNoteStore struct {
	notes  []model.Note
	nextID int64
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{nextID: 1}
}

func (f *fakeNoteStore) Create(ctx context.Context, note *model.Note) error {
	note.ID = f.nextID
	f.nextID++
	f.notes = append(f.notes, *note)
	return nil
}

func (f *fakeNoteStore) ListByOwner(ctx context.Context, userID int64) ([]model.Note, error) {
	var out []model.Note
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteStore) ListByOwnerRecent(ctx context.Context, userID int64) ([]model.Note, error) {
	var out []model.Note
	for i := len(f.notes) - 1; i >= 0; i-- {
		if f.notes[i].UserID == userID {
			out = append(out, f.notes[i])
		}
	}
	return out, nil
}

func (f *fakeNoteStore) GetByIDAndOwner(ctx context.Context, id, userID int64) (*model.Note, error) {
	for i := range f.notes {
		if f.notes[i].ID == id && f.notes[i].UserID == userID {
			n := f.notes[i]
			return &n, nil
		}
	}
	return nil, repository.ErrNoteNotFound
}

func (f *fakeNoteStore) Update(ctx context.Context, id, userID int64, title, body string) error {
	for i := range f.notes {
		if f.notes[i].ID == id && f.notes[i].UserID == userID {
			f.notes[i].Title = title
			f.notes[i].Body = body
			return nil
		}
	}
	return repository.ErrNoteNotFound
}

func (f *fakeNoteStore) Delete(ctx context.Context, id, userID int64) error {
	for i := range f.notes {
		if f.notes[i].ID == id && f.notes[i].UserID == userID {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNoteNotFound
}
