// Env loader
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	DBDriver    string
	DBHost      string
	DBPort      string
	DBName      string
	DBUser      string
	DBPassword  string
	DBSchema    string
	SQLitePath  string

	StoreBackend      string
	DataDir           string
	DocumentCacheSize int

	JWTSecret        string
	SitePasswordHash string

	SmtpFrom     string
	SmtpPassword string
	SmtpHost     string
	SmtpPort     string
	SwaggerHost  string
	SiteURL      string

	LogLevel          string
	Timezone          string
	Participants      []string
	ParticipantEmails map[string]string
	RevealInterval    time.Duration
}

// LoadConfig loads environment variables from the .env file
func LoadConfig() *Config {

	appEnv := os.Getenv("APP_ENV")

	switch appEnv {
	case "production":
		if err := godotenv.Load(".env.production"); err == nil {
			fmt.Println("Loaded .env.production")
		}
	default:
		if err := godotenv.Load(".env.development"); err == nil {
			fmt.Println("Loaded .env.development")
		}
	}

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBDriver:    getEnv("DB_DRIVER", "pgx"),
		DBHost:      getEnv("BLUEPRINT_DB_HOST", "localhost"),
		DBPort:      getEnv("BLUEPRINT_DB_PORT", "5432"),
		DBName:      getEnv("BLUEPRINT_DB_DATABASE", "memories"),
		DBUser:      getEnv("BLUEPRINT_DB_USERNAME", "postgres"),
		DBPassword:  getEnv("BLUEPRINT_DB_PASSWORD", ""),
		DBSchema:    getEnv("BLUEPRINT_DB_SCHEMA", "public"),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/memories.db"),

		StoreBackend:      getEnv("STORE_BACKEND", "sql"),
		DataDir:           getEnv("DATA_DIR", "./data"),
		DocumentCacheSize: getEnvInt("DOCUMENT_CACHE_SIZE", 32),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		SitePasswordHash: getEnv("SITE_PASSWORD_HASH", ""),

		SmtpFrom:     getEnv("SMTP_FROM", ""),
		SmtpPassword: getEnv("SMTP_PASSWORD", ""),
		SmtpHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SmtpPort:     getEnv("SMTP_PORT", "587"),
		SwaggerHost:  getEnv("SWAGGER_HOST", "localhost:8080"),
		SiteURL:      getEnv("SITE_URL", ""),

		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Timezone:          getEnv("TIMEZONE", "UTC"),
		Participants:      getEnvList("PARTICIPANTS", []string{"Ichrak", "Yassine"}),
		ParticipantEmails: getEnvPairs("PARTICIPANT_EMAILS"),
		RevealInterval:    getEnvDuration("REVEAL_INTERVAL", time.Minute),
	}

	return cfg
}

// Location resolves Timezone, falling back to UTC on unknown names.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AuthEnabled reports whether the site is password protected.
func (c *Config) AuthEnabled() bool {
	return c.SitePasswordHash != ""
}

// MailEnabled reports whether SMTP credentials are configured.
func (c *Config) MailEnabled() bool {
	return c.SmtpFrom != "" && c.SmtpPassword != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, defaultValue []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getEnvPairs parses "Name:addr,Name:addr".
func getEnvPairs(key string) map[string]string {
	out := map[string]string{}
	for _, pair := range getEnvList(key, nil) {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		out[name] = value
	}
	return out
}

func GetAppEnv() string {
	if value, exists := os.LookupEnv("APP_ENV"); exists {
		return value
	}
	return "development"
}
