package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/notekeep/notekeep-go/internal/model"
	"github.com/notekeep/notekeep-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("note title is required")
	ErrBodyRequired  = errors.New("note content is required")
	// ErrNoteNotFound covers both a missing note and a note owned by
	// someone else; the two are deliberately indistinguishable.
	ErrNoteNotFound = errors.New("note not found or not yours")
)

// NoteService handles note business logic. Every operation is scoped to the
// owning user.
type NoteService struct {
	notes NoteStore
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes NoteStore) *NoteService {
	return &NoteService{notes: notes}
}

// Create validates and persists a new note for the owner.
func (s *NoteService) Create(ctx context.Context, ownerID int64, req model.NoteRequest) (*model.Note, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if req.Body == "" {
		return nil, ErrBodyRequired
	}

	note := &model.Note{
		UserID: ownerID,
		Title:  req.Title,
		Body:   req.Body,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	return note, nil
}

// List returns the owner's notes in insertion order (the notes table view).
func (s *NoteService) List(ctx context.Context, ownerID int64) ([]model.Note, error) {
	notes, err := s.notes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// ListRecent returns the owner's notes newest first (the dashboard view).
func (s *NoteService) ListRecent(ctx context.Context, ownerID int64) ([]model.Note, error) {
	notes, err := s.notes.ListByOwnerRecent(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// GetForEdit loads a note for the edit view, restricted to its owner.
func (s *NoteService) GetForEdit(ctx context.Context, id, ownerID int64) (*model.Note, error) {
	note, err := s.notes.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

// Update applies an edit to a note, restricted to its owner.
func (s *NoteService) Update(ctx context.Context, id, ownerID int64, req model.NoteRequest) error {
	if req.Title == "" {
		return ErrTitleRequired
	}
	if req.Body == "" {
		return ErrBodyRequired
	}

	err := s.notes.Update(ctx, id, ownerID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

// Delete removes a note, restricted to its owner.
func (s *NoteService) Delete(ctx context.Context, id, ownerID int64) error {
	err := s.notes.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
