package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	HTTPAddr       string
	Env            string
	JWTSecret      string
	SessionTTL     time.Duration
	OTPTTL         time.Duration
	AllowedOrigins []string

	SenderEmail string
	SenderName  string
	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("Auth: No .env file found, relying on system env vars")
	}

	sessionTTL, _ := time.ParseDuration(getEnv("SESSION_TTL", "168h"))
	otpTTL, _ := time.ParseDuration(getEnv("OTP_TTL", "10m"))

	cfg := AppConfig{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8001"),
		Env:            getEnv("APP_ENV", "development"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		SessionTTL:     sessionTTL,
		OTPTTL:         otpTTL,
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		SenderEmail: getEnv("SENDER_EMAIL", ""),
		SenderName:  getEnv("SENDER_NAME", "Authnext"),
		SMTPHost:    getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:    getEnv("SMTP_PORT", "465"),
		SMTPUser:    getEnv("SMTP_USER", ""),
		SMTPPass:    getEnv("SMTP_PASS", ""),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("Auth: JWT_SECRET must be set")
	}
	return cfg
}

// IsProduction switches cookie hardening (Secure, SameSite=None).
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
