package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// Converter sidecar
	ConverterURL      string
	ConversionTimeout int
	MaxRetries        int

	// Storage
	StorageBackend string
	MediaRoot      string
	MaxUploadMB    int64
	S3Bucket       string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3Endpoint     string
	S3UsePathStyle bool

	// Redis status cache (disabled when RedisAddr is empty)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Cleanup
	RetentionDays int

	// Admin
	AdminJWTSecret string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		ConverterURL:      getEnv("CONVERTER_URL", "http://localhost:9090"),
		ConversionTimeout: getEnvInt("CONVERSION_TIMEOUT", 120),
		MaxRetries:        getEnvInt("CONVERSION_MAX_RETRIES", 3),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageLocal),
		MediaRoot:      getEnv("MEDIA_ROOT", "media"),
		MaxUploadMB:    int64(getEnvInt("MAX_UPLOAD_MB", 50)),
		S3Bucket:       getEnv("AWS_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:    getEnv("S3_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET", ""),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3UsePathStyle: getEnvBool("S3_USE_PATH_STYLE_ENDPOINT", false),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RetentionDays: getEnvInt("CONVERSION_FILE_RETENTION_DAYS", 1),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ConverterURL == "" {
		return fmt.Errorf("CONVERTER_URL is required")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	switch c.StorageBackend {
	case StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("AWS_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.StorageBackend)
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("CONVERSION_FILE_RETENTION_DAYS must not be negative")
	}
	return nil
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return fallback
}
