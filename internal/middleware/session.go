package middleware

import (
	"context"
	"net/http"

	"github.com/notekeep/notekeep-go/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// Sessions returns middleware that resolves the session cookie against the
// manager and, when a live session exists, attaches it to the request
// context. Handlers that need a session where none exists yet create one
// themselves.
func Sessions(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err == nil {
				if sess, ok := manager.Get(cookie.Value); ok {
					r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that redirects requests without an
// authenticated session to the sign-in page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok || !sess.IsAuthenticated() {
			http.Redirect(w, r, "/Signin", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext extracts the request's session from the context.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok
}

// ContextWithSession attaches a session to a context. Handlers use it after
// lazily creating a session mid-request.
func ContextWithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}
