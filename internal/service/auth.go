package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notekeep/notekeep-go/internal/crypto"
	"github.com/notekeep/notekeep-go/internal/model"
	"github.com/notekeep/notekeep-go/internal/repository"
	"github.com/notekeep/notekeep-go/internal/session"
)

var (
	ErrDuplicateUser       = errors.New("user already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("wrong email or password")
	ErrSessionExpired      = errors.New("session expired")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrPasswordRequired    = errors.New("password is required")
	ErrEmailRequired       = errors.New("email is required")
)

// AuthService orchestrates registration, OTP issuance and verification for
// signup and login, and the OTP-gated password reset. Flow state lives on
// the caller's session; codes and users live in the stores.
type AuthService struct {
	users    UserStore
	codes    OTPStore
	notifier Notifier
	otpTTL   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, codes OTPStore, notifier Notifier, otpTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		codes:    codes,
		notifier: notifier,
		otpTTL:   otpTTL,
	}
}

// RequestSignup validates a registration, parks the payload on the session
// with the password already hashed, and mails a one-time code. The user row
// is not created until the code is verified.
func (s *AuthService) RequestSignup(ctx context.Context, sess *session.Session, req model.SignupRequest) error {
	if req.Email == "" {
		return ErrEmailRequired
	}
	if req.Password == "" {
		return ErrPasswordRequired
	}

	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return ErrDuplicateUser
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("look up user: %w", err)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	sess.BeginSignup(session.SignupData{
		Name:         req.Name,
		DOB:          req.DOB,
		Email:        req.Email,
		PasswordHash: hash,
	})

	return s.issueCode(ctx, req.Email, func(code string) error {
		return s.notifier.SendSignupOTP(req.Email, req.Name, code)
	})
}

// VerifySignupOTP checks the submitted code against the session's pending
// email and, on success, creates the verified user and consumes every code
// issued for that address.
func (s *AuthService) VerifySignupOTP(ctx context.Context, sess *session.Session, code string) error {
	data, ok := sess.SignupData()
	if !ok {
		return ErrSessionExpired
	}

	if err := s.consumeCode(ctx, data.Email, code); err != nil {
		return err
	}

	user := &model.User{
		Name:         data.Name,
		DOB:          data.DOB,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		IsVerified:   true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("create user: %w", err)
	}

	if err := s.codes.DeleteByEmail(ctx, data.Email); err != nil {
		return fmt.Errorf("consume codes: %w", err)
	}

	sess.CompleteSignup()
	return nil
}

// SignIn authenticates a user by password and binds the identity to the
// session.
func (s *AuthService) SignIn(ctx context.Context, sess *session.Session, req model.LoginRequest) error {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("look up user: %w", err)
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	sess.Authenticate(user.ID, user.Email, false)
	return nil
}

// RequestLoginOTP mails a login code to a registered address and records
// the pending email on the session.
func (s *AuthService) RequestLoginOTP(ctx context.Context, sess *session.Session, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("look up user: %w", err)
	}

	sess.BeginLogin(email)

	return s.issueCode(ctx, email, func(code string) error {
		return s.notifier.SendLoginOTP(email, code)
	})
}

// VerifyLoginOTP checks the submitted code against the session's pending
// login email and, on success, authenticates the session with a forced
// password reset and consumes the codes for that address.
func (s *AuthService) VerifyLoginOTP(ctx context.Context, sess *session.Session, code string) error {
	email, ok := sess.LoginEmail()
	if !ok {
		return ErrSessionExpired
	}

	if err := s.consumeCode(ctx, email, code); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("look up user: %w", err)
	}

	if err := s.codes.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("consume codes: %w", err)
	}

	sess.Authenticate(user.ID, user.Email, true)
	return nil
}

// SetPassword re-hashes and stores a new password for the authenticated
// user. A confirmation mismatch leaves the stored password untouched.
func (s *AuthService) SetPassword(ctx context.Context, sess *session.Session, req model.SetPasswordRequest) error {
	userID, _, ok := sess.User()
	if !ok {
		return ErrSessionExpired
	}

	if req.Password == "" {
		return ErrPasswordRequired
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}

	sess.ClearForcedReset()
	return nil
}

// GetUser retrieves a user by ID for page rendering.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}

// issueCode persists a fresh code for the email and hands it to send for
// delivery. Older codes for the address stay valid until one is consumed.
func (s *AuthService) issueCode(ctx context.Context, email string, send func(code string) error) error {
	code, err := crypto.GenerateOTP(crypto.OTPLength)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	now := time.Now()
	otp := &model.OneTimeCode{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.otpTTL),
	}
	if err := s.codes.Create(ctx, otp); err != nil {
		return fmt.Errorf("save code: %w", err)
	}

	if err := send(code); err != nil {
		return fmt.Errorf("deliver code: %w", err)
	}
	return nil
}

// consumeCode validates a submitted code for an email, including the expiry
// window.
func (s *AuthService) consumeCode(ctx context.Context, email, code string) error {
	otp, err := s.codes.GetByEmailAndCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return ErrInvalidOrExpiredOTP
		}
		return fmt.Errorf("look up code: %w", err)
	}
	if time.Now().After(otp.ExpiresAt) {
		return ErrInvalidOrExpiredOTP
	}
	return nil
}
