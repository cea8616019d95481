package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                  string
	DatabaseURL           string
	JWTSecret             string
	FrontendDir           string
	Environment           string
	PublicBaseURL         string
	MaxBodyBytes          int64
	MaxUploadBytes        int64
	ScanRetentionDays     int
	ScanRetentionInterval time.Duration
	RunMigrations         bool
	MetricsEnabled        bool
}

func Load() Config {
	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		FrontendDir:           getEnv("FRONTEND_DIR", "frontend/dist"),
		Environment:           getEnv("APP_ENV", "development"),
		PublicBaseURL:         getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MaxUploadBytes:        int64(getEnvInt("MAX_UPLOAD_BYTES", 16*1024*1024)),
		ScanRetentionDays:     getEnvInt("SCAN_RETENTION_DAYS", 365),
		ScanRetentionInterval: getEnvDuration("SCAN_RETENTION_INTERVAL", 24*time.Hour),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.PublicBaseURL) == "" {
			return fmt.Errorf("PUBLIC_BASE_URL must be set in production for QR link targets")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.MaxUploadBytes < 1024 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least 1024")
	}
	if c.ScanRetentionDays <= 0 {
		return fmt.Errorf("SCAN_RETENTION_DAYS must be positive")
	}
	return nil
}
