package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port      string
	LogLevel  string
	LogFormat string

	// Database: "sqlite" uses DatabasePath, "postgres" uses DatabaseURL
	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string

	// Result cache. An empty RedisAddr keeps results in process memory.
	CacheExpiration      time.Duration
	CacheCleanupInterval time.Duration
	RedisAddr            string
	RedisPassword        string
	RedisDB              int

	// HTTP
	AllowedOrigins     []string
	RateLimitInterval  time.Duration
	RateLimitBurst     int
	MaxRequestBodySize int64

	// Upper bound on properties calculated at once by compare and dashboard
	CompareConcurrency int
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
func LoadConfig() {
	errEnv := godotenv.Load()

	// Running from a subdirectory, look one level up
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables.")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	Cfg = FromEnv()

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBDriver=%s, CacheBackend=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabaseDriver, Cfg.CacheBackend())
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *AppConfig {
	driver := strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite"))
	databaseURL := getEnv("DATABASE_URL", "")
	// A bare DATABASE_URL selects postgres
	if os.Getenv("DATABASE_DRIVER") == "" && databaseURL != "" {
		driver = "postgres"
	}

	return &AppConfig{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DatabaseDriver: driver,
		DatabasePath:   getEnv("DATABASE_PATH", "./strscout.db"),
		DatabaseURL:    databaseURL,

		CacheExpiration:      getEnvAsDuration("CACHE_EXPIRATION", 15*time.Minute),
		CacheCleanupInterval: getEnvAsDuration("CACHE_CLEANUP_INTERVAL", 30*time.Minute),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),

		AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		RateLimitInterval:  getEnvAsDuration("RATE_LIMIT_INTERVAL", 100*time.Millisecond),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 30),
		MaxRequestBodySize: int64(getEnvAsInt("MAX_REQUEST_BODY_BYTES", 1<<20)),

		CompareConcurrency: getEnvAsInt("COMPARE_CONCURRENCY", 8),
	}
}

// DatabaseDSN is the path or URL matching DatabaseDriver.
func (c *AppConfig) DatabaseDSN() string {
	if c.DatabaseDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DatabasePath
}

func (c *AppConfig) CacheBackend() string {
	if c.RedisAddr != "" {
		return "redis"
	}
	return "memory"
}

// getEnv retrieves a non-empty environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getEnvAsList splits a comma-separated variable, dropping empty entries.
func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
