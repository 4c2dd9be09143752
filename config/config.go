package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port           string
	TrustedProxies []string

	// Database
	MongoURI string
	MongoDB  string

	// Security
	JWTSecret string

	// Uploads
	UploadDir string

	// Email transport (OTP + alert notifications)
	SendGridAPIKey string
	EmailFromName  string
	EmailFromAddr  string

	// SMS transport (OTP)
	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	// Optional Redis-backed OTP rate limiting
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	OTPSendLimit  int
	OTPSendWindow time.Duration
}

func Load() *Config {
	// .env is optional, env vars win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARNING: failed to load .env file: %v", err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "5000"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "coastwatch"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Coastwatch"),
		EmailFromAddr:  getEnv("EMAIL_FROM_ADDR", ""),
		TwilioSID:      getEnv("TWILIO_SID", ""),
		TwilioToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:     getEnv("TWILIO_PHONE", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		OTPSendLimit:   getEnvAsInt("OTP_SEND_LIMIT", 5),
		OTPSendWindow:  getEnvAsDuration("OTP_SEND_WINDOW", 15*time.Minute),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "coastwatch-dev-secret"
		log.Printf("WARNING: JWT_SECRET not set, using insecure development secret")
	}

	trustedProxies := os.Getenv("TRUSTED_PROXIES")
	if trustedProxies != "" {
		cfg.TrustedProxies = strings.Split(trustedProxies, ",")
		for i, proxy := range cfg.TrustedProxies {
			cfg.TrustedProxies[i] = strings.TrimSpace(proxy)
		}
	}

	return cfg
}

// SMSConfigured reports whether the Twilio transport can be used.
func (c *Config) SMSConfigured() bool {
	return c.TwilioSID != "" && c.TwilioToken != "" && c.TwilioFrom != ""
}

// EmailConfigured reports whether the SendGrid transport can be used.
func (c *Config) EmailConfigured() bool {
	return c.SendGridAPIKey != "" && c.EmailFromAddr != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
