package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/notekeep/notekeep-go/internal/model"
)

var ErrCodeNotFound = errors.New("one-time code not found")

// OTPRepository handles one-time code persistence operations.
type OTPRepository struct {
	db *sql.DB
}

// NewOTPRepository creates a new OTPRepository.
func NewOTPRepository(db *sql.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Create inserts a new one-time code and sets the generated ID on the struct.
func (r *OTPRepository) Create(ctx context.Context, code *model.OneTimeCode) error {
	query := `INSERT INTO one_time_codes (email, code, created_at, expires_at) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, code.Email, code.Code, code.CreatedAt, code.ExpiresAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	code.ID = id
	return nil
}

// GetByEmailAndCode retrieves the most recent code matching the email and
// code value. Expiry is checked by the caller against ExpiresAt.
func (r *OTPRepository) GetByEmailAndCode(ctx context.Context, email, code string) (*model.OneTimeCode, error) {
	query := `SELECT id, email, code, created_at, expires_at
		FROM one_time_codes WHERE email = ? AND code = ? ORDER BY id DESC LIMIT 1`

	otp := &model.OneTimeCode{}
	err := r.db.QueryRowContext(ctx, query, email, code).Scan(
		&otp.ID, &otp.Email, &otp.Code, &otp.CreatedAt, &otp.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}

	return otp, nil
}

// DeleteByEmail removes every code issued for an email address. Consuming a
// code this way also invalidates any stale concurrent codes for the same
// address.
func (r *OTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM one_time_codes WHERE email = ?`, email)
	return err
}
