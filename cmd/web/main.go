package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/notekeep/notekeep-go/internal/config"
	"github.com/notekeep/notekeep-go/internal/handler"
	"github.com/notekeep/notekeep-go/internal/middleware"
	"github.com/notekeep/notekeep-go/internal/notify"
	"github.com/notekeep/notekeep-go/internal/repository"
	"github.com/notekeep/notekeep-go/internal/service"
	"github.com/notekeep/notekeep-go/internal/session"
	"github.com/notekeep/notekeep-go/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logger := slog.Default()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(context.Background(), db); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	notifier := notify.NewEmailNotifier(cfg.SMTP, logger)
	sessions := session.NewManager(cfg.SessionTTL)

	authService := service.NewAuthService(userRepo, otpRepo, notifier, cfg.OTPTTL)
	noteService := service.NewNoteService(noteRepo)

	tmpl := web.Templates()
	authHandler := handler.NewAuthHandler(authService, sessions, tmpl)
	noteHandler := handler.NewNoteHandler(noteService, authService, tmpl)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Sessions(sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/", authHandler.HandleHome)
	r.Get("/reg", authHandler.HandleRegisterPage)
	r.Post("/signup", authHandler.HandleSignup)
	r.Get("/verifyemail", authHandler.HandleVerifyEmailPage)
	r.Post("/verify-signup-otp", authHandler.HandleVerifySignupOTP)
	r.Get("/Signin", authHandler.HandleSigninPage)
	r.Post("/checkuser", authHandler.HandleCheckUser)
	r.Get("/verifyuser", authHandler.HandleVerifyUserPage)
	r.Post("/login-request", authHandler.HandleLoginRequest)
	r.Post("/verify-login-otp", authHandler.HandleVerifyLoginOTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/changepass", authHandler.HandleChangePassPage)
		r.Post("/setpass", authHandler.HandleSetPass)
		r.Get("/dashboard", noteHandler.HandleDashboard)
		r.Post("/notes", noteHandler.HandleCreateNote)
		r.Get("/notestable", noteHandler.HandleNotesTable)
		r.Post("/edit", noteHandler.HandleEdit)
		r.Post("/update", noteHandler.HandleUpdate)
		r.Post("/delete", noteHandler.HandleDelete)
		r.Get("/logout", authHandler.HandleLogout)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	if err := db.Close(); err != nil {
		logger.Error("closing database failed", "error", err)
	}

	logger.Info("server stopped")
}
