package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the application needs at startup. It is built
// once in main and handed to app.New; nothing reads the environment after
// that.
type Config struct {
	Port             string
	AppEnv           string
	DBPath           string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SessionSecret    string
	SessionTTLHours  int
	CORSAllowOrigins string
}

// Load reads the configuration from the environment, with an optional .env
// file for local development.
func Load() *Config {
	// Cargar .env si existe; las variables de entorno reales tienen prioridad
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "3000"),
		AppEnv:           getEnv("APP_ENV", "development"),
		DBPath:           getEnv("DB_PATH", "./pulsefeed.db"),
		RedisAddr:        getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		SessionSecret:    getEnv("SESSION_SECRET", "fallback-secret-key"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		RedisDB:          0,
		SessionTTLHours:  24,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.SessionTTLHours = hours
		}
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
