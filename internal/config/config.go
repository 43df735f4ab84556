package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	SessionTTL  time.Duration
	OTPTTL      time.Duration
	SMTP        SMTPConfig
}

// SMTPConfig holds the credentials for the outbound mail account.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "4000"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/notekeep?parseTime=true"),
		SessionTTL:  getEnvDuration("SESSION_TTL", time.Hour),
		OTPTTL:      getEnvDuration("OTP_TTL", 5*time.Minute),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 465),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}

	if cfg.Env == "production" && cfg.SMTP.User == "" {
		slog.Warn("SMTP_USER not set, one-time codes cannot be delivered")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid integer in environment, using fallback", "key", key)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		slog.Warn("invalid duration in environment, using fallback", "key", key)
	}
	return fallback
}
