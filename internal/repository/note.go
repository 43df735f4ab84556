package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/notekeep/notekeep-go/internal/model"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteRepository handles note persistence operations. Every targeted lookup
// and mutation is keyed on (id, user_id) so a note is only ever visible to
// its owner.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a new note and sets the generated ID on the note struct.
func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	query := `INSERT INTO notes (user_id, title, body) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, note.UserID, note.Title, note.Body)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	note.ID = id
	return nil
}

// ListByOwner retrieves all notes for a user in insertion order.
func (r *NoteRepository) ListByOwner(ctx context.Context, userID int64) ([]model.Note, error) {
	query := `SELECT id, user_id, title, body, created_at, updated_at
		FROM notes WHERE user_id = ? ORDER BY id ASC`

	return r.list(ctx, query, userID)
}

// ListByOwnerRecent retrieves all notes for a user, newest first.
func (r *NoteRepository) ListByOwnerRecent(ctx context.Context, userID int64) ([]model.Note, error) {
	query := `SELECT id, user_id, title, body, created_at, updated_at
		FROM notes WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	return r.list(ctx, query, userID)
}

func (r *NoteRepository) list(ctx context.Context, query string, userID int64) ([]model.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// GetByIDAndOwner retrieves a note by ID, restricted to the owning user.
func (r *NoteRepository) GetByIDAndOwner(ctx context.Context, id, userID int64) (*model.Note, error) {
	query := `SELECT id, user_id, title, body, created_at, updated_at
		FROM notes WHERE id = ? AND user_id = ?`

	note := &model.Note{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Body, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return note, nil
}

// Update replaces the title and body of a note, restricted to the owning user.
func (r *NoteRepository) Update(ctx context.Context, id, userID int64, title, body string) error {
	query := `UPDATE notes SET title = ?, body = ? WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, title, body, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// Delete removes a note, restricted to the owning user.
func (r *NoteRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM notes WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
