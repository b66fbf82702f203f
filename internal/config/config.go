package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	JWTSecret         string
	PaystackSecretKey string

	MailAPIKey  string
	MailBaseURL string
	MailSender  string
	AdminEmail  string

	// Checkout policy
	FreeShippingThreshold int64
	DefaultShippingFee    int64
	AllowBackorder        bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		AppPort:           os.Getenv("APP_PORT"),
		AppEnv:            os.Getenv("APP_ENV"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		MailAPIKey:        os.Getenv("MAIL_API_KEY"),
		MailBaseURL:       os.Getenv("MAIL_BASE_URL"),
		MailSender:        os.Getenv("MAIL_SENDER"),
		AdminEmail:        envString("ADMIN_EMAIL", "admin@emeraldscentsational.com"),

		FreeShippingThreshold: envInt64("FREE_SHIPPING_THRESHOLD", 50000),
		DefaultShippingFee:    envInt64("DEFAULT_SHIPPING_FEE", 2500),
		AllowBackorder:        os.Getenv("ALLOW_BACKORDER") == "true",
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("invalid value for %s: %q", key, raw)
	}
	return n
}
