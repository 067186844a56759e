package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string

	AdminClubID       string
	AdminName         string
	AdminPasswordHash []byte

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	CalendarAPIURL string
	OpenAIAPIKey   string
}

func Load() *Config {
	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "recruituser"),
		DBPassword: getEnv("DB_PASSWORD", "recruitpassword"),
		DBName:     getEnv("DB_NAME", "recruitment"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),

		AdminClubID: getEnv("ADMIN_CLUB_ID", "CODEBUSTERS2025"),
		AdminName:   getEnv("ADMIN_NAME", "CodeBusters Admin"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "recruitment@codebusters.club"),

		CalendarAPIURL: getEnv("CALENDAR_API_URL", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
	}

	// The admin password is hashed once at startup so the plaintext never
	// travels further than this function.
	password := getEnv("ADMIN_PASSWORD", "CodeBusters@2025")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	cfg.AdminPasswordHash = hash

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
