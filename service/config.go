package service

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	Clerk struct {
		SecretKey string
	}

	Stripe struct {
		PublishableKey string
		SecretKey      string
		WebhookSecret  string
	}

	Sirene struct {
		APIToken string
	}

	Email struct {
		Host     string
		Port     int
		Login    string
		Key      string
		From     string
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/chocolaterie.db"),
	}

	// Clerk
	config.Clerk.SecretKey = getEnv("CLERK_SECRET_KEY", "")

	// Stripe
	config.Stripe.PublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	config.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")

	// INSEE Sirene
	config.Sirene.APIToken = getEnv("SIRENE_API_TOKEN", "")

	// Email (Brevo SMTP)
	config.Email.Host = getEnv("BREVO_SMTP_HOST", "")
	if port, err := strconv.Atoi(getEnv("BREVO_SMTP_PORT", "587")); err == nil {
		config.Email.Port = port
	} else {
		config.Email.Port = 587
	}
	config.Email.Login = getEnv("BREVO_SMTP_LOGIN", "")
	config.Email.Key = getEnv("BREVO_SMTP_KEY", "")
	config.Email.From = getEnv("EMAIL_FROM", "commandes@chocolaterie-baillet.fr")

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
