package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// App carries the secret material and lifetimes the services are constructed
// with, so nothing below the HTTP layer reads the environment directly.
type App struct {
	DatabaseURL string
	Port        string

	JWTSecret       []byte
	SessionTTL      time.Duration
	ResetTokenTTL   time.Duration
	ResetGrantTTL   time.Duration
	BcryptCost      int
	FrontendBaseURL string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string
}

func Load() (*App, error) {
	cfg := &App{
		DatabaseURL:     Config("DATABASE_URL"),
		Port:            Config("PORT"),
		JWTSecret:       []byte(Config("JWT_SECRET")),
		SessionTTL:      72 * time.Hour,
		ResetTokenTTL:   15 * time.Minute,
		ResetGrantTTL:   10 * time.Minute,
		BcryptCost:      bcrypt.DefaultCost,
		FrontendBaseURL: Config("FRONTEND_URL"),
		BrevoAPIKey:     Config("BREVO_API_KEY"),
		EmailSender:     Config("EMAIL_SENDER"),
		EmailSenderName: Config("EMAIL_SENDER_NAME"),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.FrontendBaseURL == "" {
		cfg.FrontendBaseURL = "http://localhost:3000"
	}
	if hours := Config("SESSION_TTL_HOURS"); hours != "" {
		h, err := strconv.Atoi(hours)
		if err != nil || h < 1 || h > 30*24 {
			return nil, errors.New("SESSION_TTL_HOURS must be between 1 and 720")
		}
		cfg.SessionTTL = time.Duration(h) * time.Hour
	}
	if cost := Config("BCRYPT_COST"); cost != "" {
		c, err := strconv.Atoi(cost)
		if err != nil || c < bcrypt.DefaultCost || c > bcrypt.MaxCost {
			return nil, errors.New("BCRYPT_COST out of range")
		}
		cfg.BcryptCost = c
	}

	return cfg, nil
}
