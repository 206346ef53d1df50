package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	Port string
	Env  string

	StoreBackend string // "file" or "postgres"
	StoreFile    string // path to the JSON store (file backend)

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string

	StripeSecretKey  string
	StripeWebhookKey string
	Currency         string
	SuccessURL       string
	CancelURL        string

	AdminPasswordHash string // bcrypt hash of the admin password
	JWTSecret         string
	TokenTTLMinutes   int

	FrontendOrigin string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("APP_ENV", "development"),
		StoreBackend:      getEnv("STORE_BACKEND", BackendFile),
		StoreFile:         getEnv("STORE_FILE", "store.json"),
		PostgresUser:      os.Getenv("POSTGRES_USER"),
		PostgresPassword:  os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:        os.Getenv("POSTGRES_DB"),
		PostgresHost:      getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:      getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:   getEnv("POSTGRES_SSLMODE", "disable"),
		StripeSecretKey:   os.Getenv("STRIPE_API_KEY"),
		StripeWebhookKey:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:          getEnv("CURRENCY", "usd"),
		SuccessURL:        getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/success"),
		CancelURL:         getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/cart"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTLMinutes:   getEnvInt("TOKEN_TTL_MINUTES", 120),
		FrontendOrigin:    getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
	}

	if cfg.StripeSecretKey == "" || cfg.StripeWebhookKey == "" {
		return nil, fmt.Errorf("missing Stripe environment variables")
	}
	if cfg.AdminPasswordHash == "" || cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing admin auth environment variables")
	}
	if cfg.StoreBackend != BackendFile && cfg.StoreBackend != BackendPostgres {
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == BackendPostgres {
		if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
			return nil, fmt.Errorf("missing Postgres environment variables")
		}
	}

	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
