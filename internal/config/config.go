package config

import (
	"log"
	"os"
	"strconv"

	"github.com/openinvoice/openinvoice/internal/services"
)

type Config struct {
	Port              string
	DatabasePath      string
	Env               string
	StorageQuotaBytes int64
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabasePath = getEnv("DATABASE_PATH", "openinvoice.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.StorageQuotaBytes = parseInt64("STORAGE_QUOTA_BYTES", services.DefaultQuotaBytes)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			log.Printf("invalid value for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}
