package model

import "time"

// Note represents a user-owned note in the database.
type Note struct {
	ID        int64
	UserID    int64
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteRequest carries the note form fields for create and update.
type NoteRequest struct {
	Title string
	Body  string
}
