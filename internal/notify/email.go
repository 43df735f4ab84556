package notify

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/notekeep/notekeep-go/internal/config"

	"gopkg.in/gomail.v2"
)

// EmailNotifier delivers one-time codes over SMTP.
type EmailNotifier struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// NewEmailNotifier creates a new EmailNotifier.
func NewEmailNotifier(cfg config.SMTPConfig, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, logger: logger}
}

// SendSignupOTP mails a registration code to a prospective user.
func (n *EmailNotifier) SendSignupOTP(toEmail, name, code string) error {
	subject := "Your OTP Code"
	body := fmt.Sprintf("Hi %s, your OTP is %s. It will expire in 5 minutes.", name, code)
	return n.send(toEmail, subject, body)
}

// SendLoginOTP mails a login code to a registered user.
func (n *EmailNotifier) SendLoginOTP(toEmail, code string) error {
	subject := "Login OTP"
	body := fmt.Sprintf("Your login OTP is %s. It expires in 5 minutes.", code)
	return n.send(toEmail, subject, body)
}

func (n *EmailNotifier) send(toEmail, subject, body string) error {
	if n.cfg.Host == "" || n.cfg.User == "" || n.cfg.From == "" {
		return fmt.Errorf("email config missing")
	}
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("empty recipient")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Info("one-time code sent", slog.String("to", toEmail), slog.String("subject", subject))
	return nil
}
