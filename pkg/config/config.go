package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: all environment variables are read here and nowhere else
type Config struct {
	Env string // development, staging, production

	// Scan
	Scan ScanConfig

	// Output
	Output OutputConfig

	// Mail (notification sink; disabled when Host is empty)
	SMTP SMTPConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// ScanConfig holds pipeline tuning knobs
type ScanConfig struct {
	Workers      int           // concurrent fetch workers
	RatePerSec   float64       // outbound request budget (requests per second)
	Burst        int           // token bucket burst size
	Jitter       time.Duration // upper bound of randomized inter-request spacing
	FetchTimeout time.Duration // per-symbol fetch timeout
}

// OutputConfig holds report sink configuration
type OutputConfig struct {
	Dir string // directory for CSV/XLSX report files
}

// SMTPConfig holds email digest configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string // comma-separated recipient list
}

// Load reads configuration from environment variables
// ⭐ SSOT: only this function calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Scan: ScanConfig{
			Workers:      getEnvAsInt("SCAN_WORKERS", 8),
			RatePerSec:   getEnvAsFloat("SCAN_RATE_PER_SEC", 3.0),
			Burst:        getEnvAsInt("SCAN_RATE_BURST", 1),
			Jitter:       getEnvAsDuration("SCAN_JITTER", "150ms"),
			FetchTimeout: getEnvAsDuration("SCAN_FETCH_TIMEOUT", "20s"),
		},

		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "."),
		},

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			To:       getEnv("SMTP_TO", ""),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Scan.Workers < 1 {
		return fmt.Errorf("SCAN_WORKERS must be at least 1")
	}

	if c.Scan.RatePerSec <= 0 {
		return fmt.Errorf("SCAN_RATE_PER_SEC must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
