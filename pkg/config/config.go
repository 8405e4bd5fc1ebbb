package config

import (
	"os"
	"strconv"
	"time"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Store   StoreConfig
	Upload  UploadConfig
	Extract ExtractConfig
	Metrics MetricsConfig
}

// StoreConfig configures transaction store persistence.
type StoreConfig struct {
	Path             string // Path to the JSON state document
	SnapshotSchedule string // Cron expression for periodic snapshots
}

// UploadConfig constrains files accepted at the parse boundary.
type UploadConfig struct {
	MaxBytes int64
}

// ExtractConfig bounds the PDF text-extraction stage.
type ExtractConfig struct {
	MaxPages       int
	PerPageTimeout time.Duration
	PagesPerSecond float64
}

type MetricsConfig struct {
	Enabled bool
	Port    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Store: StoreConfig{
			Path:             getEnv("STORE_PATH", "finsight-data.json"),
			SnapshotSchedule: getEnv("STORE_SNAPSHOT_SCHEDULE", "0 3 * * *"),
		},
		Upload: UploadConfig{
			MaxBytes: getEnvAsInt64("UPLOAD_MAX_BYTES", 10*1024*1024),
		},
		Extract: ExtractConfig{
			MaxPages:       getEnvAsInt("EXTRACT_MAX_PAGES", 50),
			PerPageTimeout: getEnvAsDuration("EXTRACT_PAGE_TIMEOUT", 10*time.Second),
			PagesPerSecond: getEnvAsFloat("EXTRACT_PAGES_PER_SECOND", 5),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", false),
			Port:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
