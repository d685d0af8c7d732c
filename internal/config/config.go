package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	SQLitePath  string
	Env         string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (loaded by main) > default.
// An empty DatabaseDSN selects the embedded sqlite database at SQLitePath.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8000")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "shelf_life.db")
	cfg.Env = getEnv("APP_ENV", "development")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
