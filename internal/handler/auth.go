package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/notekeep/notekeep-go/internal/middleware"
	"github.com/notekeep/notekeep-go/internal/model"
	"github.com/notekeep/notekeep-go/internal/service"
	"github.com/notekeep/notekeep-go/internal/session"
)

// AuthHandler handles the registration, sign-in and password reset pages.
type AuthHandler struct {
	service  *service.AuthService
	sessions *session.Manager
	tmpl     *template.Template
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, sessions *session.Manager, tmpl *template.Template) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions, tmpl: tmpl}
}

// HandleHome handles GET / requests.
func (h *AuthHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	render(w, h.tmpl, "home.html", nil)
}

// HandleRegisterPage handles GET /reg requests.
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.tmpl, "reg.html", nil)
}

// HandleSignup handles POST /signup requests: it parks the registration on
// the session and mails a one-time code.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	req := model.SignupRequest{
		Name:     r.PostFormValue("name"),
		DOB:      r.PostFormValue("dob"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	sess := ensureSession(w, r, h.sessions)
	if err := h.service.RequestSignup(r.Context(), sess, req); err != nil {
		h.writeAuthError(w, err)
		return
	}

	http.Redirect(w, r, "/verifyemail", http.StatusSeeOther)
}

// HandleVerifyEmailPage handles GET /verifyemail requests. Without a
// pending signup it sends the browser back to the registration form.
func (h *AuthHandler) HandleVerifyEmailPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/reg", http.StatusFound)
		return
	}
	data, ok := sess.SignupData()
	if !ok {
		http.Redirect(w, r, "/reg", http.StatusFound)
		return
	}

	render(w, h.tmpl, "checkotp.html", struct{ Email string }{Email: data.Email})
}

// HandleVerifySignupOTP handles POST /verify-signup-otp requests: on a
// valid code it creates the user and sends the browser to sign-in.
func (h *AuthHandler) HandleVerifySignupOTP(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	sess := ensureSession(w, r, h.sessions)
	if err := h.service.VerifySignupOTP(r.Context(), sess, r.PostFormValue("otp")); err != nil {
		h.writeAuthError(w, err)
		return
	}

	http.Redirect(w, r, "/Signin", http.StatusSeeOther)
}

// HandleSigninPage handles GET /Signin requests.
func (h *AuthHandler) HandleSigninPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.tmpl, "signin.html", nil)
}

// HandleCheckUser handles POST /checkuser requests (password sign-in).
func (h *AuthHandler) HandleCheckUser(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	req := model.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	sess := ensureSession(w, r, h.sessions)
	if err := h.service.SignIn(r.Context(), sess, req); err != nil {
		h.writeAuthError(w, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleVerifyUserPage handles GET /verifyuser requests (OTP login form).
func (h *AuthHandler) HandleVerifyUserPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.tmpl, "verify.html", nil)
}

// HandleLoginRequest handles POST /login-request requests: it mails a login
// code and shows the code entry page.
func (h *AuthHandler) HandleLoginRequest(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	sess := ensureSession(w, r, h.sessions)
	if err := h.service.RequestLoginOTP(r.Context(), sess, r.PostFormValue("email")); err != nil {
		h.writeAuthError(w, err)
		return
	}

	render(w, h.tmpl, "checkloginotp.html", nil)
}

// HandleVerifyLoginOTP handles POST /verify-login-otp requests: on a valid
// code the session is authenticated and sent to the forced password reset.
func (h *AuthHandler) HandleVerifyLoginOTP(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	sess := ensureSession(w, r, h.sessions)
	if err := h.service.VerifyLoginOTP(r.Context(), sess, r.PostFormValue("otp")); err != nil {
		h.writeAuthError(w, err)
		return
	}

	http.Redirect(w, r, "/changepass", http.StatusSeeOther)
}

// HandleChangePassPage handles GET /changepass requests.
func (h *AuthHandler) HandleChangePassPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.tmpl, "change.html", nil)
}

// HandleSetPass handles POST /setpass requests.
func (h *AuthHandler) HandleSetPass(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/Signin", http.StatusFound)
		return
	}

	req := model.SetPasswordRequest{
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("cpassword"),
	}
	if err := h.service.SetPassword(r.Context(), sess, req); err != nil {
		h.writeAuthError(w, err)
		return
	}

	http.Redirect(w, r, "/Signin", http.StatusSeeOther)
}

// HandleLogout handles GET /logout requests: it destroys the server-side
// session and clears the cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		h.sessions.Destroy(sess.Token())
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// writeAuthError maps auth flow errors onto plain-text responses.
func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateUser):
		http.Error(w, "User already registered", http.StatusBadRequest)
	case errors.Is(err, service.ErrUserNotFound):
		http.Error(w, "User not registered", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "wrong email or password", http.StatusBadRequest)
	case errors.Is(err, service.ErrSessionExpired):
		http.Error(w, "Session expired. Please try again.", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidOrExpiredOTP):
		http.Error(w, "Invalid or expired OTP", http.StatusBadRequest)
	case errors.Is(err, service.ErrPasswordMismatch):
		http.Error(w, "Passwords do not match", http.StatusBadRequest)
	case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrPasswordRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}
