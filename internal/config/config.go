package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AccessTokenCookie is the name of the session cookie issued on login.
const AccessTokenCookie = "access_token"

// Config holds the process-wide settings, loaded once at startup.
type Config struct {
	HTTPAddr        string
	MongoURI        string
	DBName          string
	JWTSecret       string
	TokenTTL        time.Duration
	AllowedOrigins  []string
	CookieCrossSite bool
	RedisAddr       string
	LogLevel        string
}

// Load reads config.env (or .env) if present, then environment variables.
// Missing optional values fall back to development defaults.
func Load() *Config {
	configPaths := []string{"config.env", "./config.env", "../config.env"}
	var configLoaded bool
	for _, configPath := range configPaths {
		if err := godotenv.Load(configPath); err == nil {
			configLoaded = true
			break
		}
	}
	if !configLoaded {
		_ = godotenv.Load()
	}

	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8000"),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:          getEnv("DB_NAME", "snapnote"),
		JWTSecret:       getEnv("JWT_SECRET_KEY", ""),
		TokenTTL:        time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		AllowedOrigins:  splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		CookieCrossSite: getEnvBool("COOKIE_CROSS_SITE", false),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
