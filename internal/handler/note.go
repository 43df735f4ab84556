package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/notekeep/notekeep-go/internal/middleware"
	"github.com/notekeep/notekeep-go/internal/model"
	"github.com/notekeep/notekeep-go/internal/service"
)

// NoteHandler handles the dashboard and note CRUD pages. All of its routes
// sit behind the auth middleware.
type NoteHandler struct {
	notes *service.NoteService
	auth  *service.AuthService
	tmpl  *template.Template
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes *service.NoteService, auth *service.AuthService, tmpl *template.Template) *NoteHandler {
	return &NoteHandler{notes: notes, auth: auth, tmpl: tmpl}
}

type notePageData struct {
	User  *model.User
	Notes []model.Note
}

// HandleDashboard handles GET /dashboard requests: the user's home with
// their notes newest first.
func (h *NoteHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	notes, err := h.notes.ListRecent(r.Context(), userID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	render(w, h.tmpl, "dashboard.html", notePageData{User: user, Notes: notes})
}

// HandleCreateNote handles POST /notes requests.
func (h *NoteHandler) HandleCreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if !parseForm(w, r) {
		return
	}

	req := model.NoteRequest{
		Title: r.PostFormValue("Note_Title"),
		Body:  r.PostFormValue("Note_content"),
	}
	if _, err := h.notes.Create(r.Context(), userID, req); err != nil {
		h.writeNoteError(w, err)
		return
	}

	http.Redirect(w, r, "/notestable", http.StatusSeeOther)
}

// HandleNotesTable handles GET /notestable requests: the plain note list in
// insertion order.
func (h *NoteHandler) HandleNotesTable(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	notes, err := h.notes.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	render(w, h.tmpl, "notes.html", notePageData{User: user, Notes: notes})
}

// HandleEdit handles POST /edit requests: it loads the caller's note into
// the edit view.
func (h *NoteHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if !parseForm(w, r) {
		return
	}

	noteID, ok := parseNoteID(w, r)
	if !ok {
		return
	}

	note, err := h.notes.GetForEdit(r.Context(), noteID, userID)
	if err != nil {
		h.writeNoteError(w, err)
		return
	}

	render(w, h.tmpl, "update.html", struct{ Note *model.Note }{Note: note})
}

// HandleUpdate handles POST /update requests.
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if !parseForm(w, r) {
		return
	}

	noteID, ok := parseNoteID(w, r)
	if !ok {
		return
	}

	req := model.NoteRequest{
		Title: r.PostFormValue("Note_Title"),
		Body:  r.PostFormValue("Note_content"),
	}
	if err := h.notes.Update(r.Context(), noteID, userID, req); err != nil {
		h.writeNoteError(w, err)
		return
	}

	http.Redirect(w, r, "/notestable", http.StatusSeeOther)
}

// HandleDelete handles POST /delete requests.
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if !parseForm(w, r) {
		return
	}

	noteID, ok := parseNoteID(w, r)
	if !ok {
		return
	}

	if err := h.notes.Delete(r.Context(), noteID, userID); err != nil {
		h.writeNoteError(w, err)
		return
	}

	http.Redirect(w, r, "/notestable", http.StatusSeeOther)
}

// authedUser extracts the authenticated user ID, redirecting to sign-in
// when the session is missing. The auth middleware makes that unreachable
// on registered routes.
func authedUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/Signin", http.StatusFound)
		return 0, false
	}
	userID, _, ok := sess.User()
	if !ok {
		http.Redirect(w, r, "/Signin", http.StatusFound)
		return 0, false
	}
	return userID, true
}

func parseNoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PostFormValue("notesid"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeNoteError maps note errors onto plain-text responses.
func (h *NoteHandler) writeNoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrBodyRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNoteNotFound):
		http.Error(w, "Note not found or you don't have permission to edit", http.StatusNotFound)
	default:
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}
