package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/notekeep/notekeep-go/internal/middleware"
	"github.com/notekeep/notekeep-go/internal/session"
)

// render executes a view into a buffer first so a template failure yields a
// clean 500 instead of a half-written page.
func render(w http.ResponseWriter, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// ensureSession returns the request's session, creating one and setting the
// cookie when the browser has none yet.
func ensureSession(w http.ResponseWriter, r *http.Request, manager *session.Manager) *session.Session {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		return sess
	}

	sess := manager.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.Token(),
		Path:     "/",
		MaxAge:   int(manager.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// clearSessionCookie expires the session cookie in the browser.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// parseForm bounds and parses a form post. It reports whether parsing
// succeeded; on failure the response has already been written.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return false
	}
	return true
}
