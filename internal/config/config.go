package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Credential storage. When DatabaseURL is set the Postgres repository is
	// used; otherwise credentials live as a JSON blob in Redis.
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Session cookie signing secret and lifetime.
	SessionSecret string
	SessionTTL    time.Duration

	// Simulated latency applied to register/login, mirroring the mock
	// network delay of the storefront.
	AuthLatency time.Duration

	// Legacy fallback credentials for the one-time migration from the old
	// token-based session scheme.
	LegacyAuthEmail    string
	LegacyAuthPassword string

	// Checkout pricing.
	ShippingFee     float64
	TaxRate         float64
	OrderResetDelay time.Duration

	CORSAllowedOrigins string

	// SendGrid email configuration.
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// AWS/SES email configuration (used when SendGrid is not configured).
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SESFromEmail       string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 30*24*time.Hour),

		AuthLatency: getEnvAsDuration("AUTH_LATENCY", 500*time.Millisecond),

		LegacyAuthEmail:    getEnv("LEGACY_AUTH_EMAIL", ""),
		LegacyAuthPassword: getEnv("LEGACY_AUTH_PASSWORD", ""),

		ShippingFee:     getEnvAsFloat("SHIPPING_FEE", 5.99),
		TaxRate:         getEnvAsFloat("TAX_RATE", 0.08),
		OrderResetDelay: getEnvAsDuration("ORDER_RESET_DELAY", 3*time.Second),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Choppers Salon"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
