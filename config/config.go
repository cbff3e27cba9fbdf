package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env              string
	Port             string
	DBURL            string
	JWTSecret        string
	TokenExpiryHours int
	RateLimitMax     int
	RateLimitWindow  int // minutes

	// S3-compatible object storage for post images (Cloudflare R2).
	// Optional: uploads are disabled when unset.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
}

func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DBURL:            mustGetEnv("DB_URL"),
		JWTSecret:        mustGetEnv("JWT_SECRET"),
		TokenExpiryHours: getEnvAsInt("TOKEN_EXPIRY_HOURS", 24),
		RateLimitMax:     getEnvAsInt("RATE_LIMIT_MAX", 20),
		RateLimitWindow:  getEnvAsInt("RATE_LIMIT_WINDOW_MIN", 60),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:          getEnv("R2_BUCKET_NAME", ""),
	}
}

// UploadsEnabled reports whether the object-storage credentials are complete.
func (c *Config) UploadsEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2Bucket != ""
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
