package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Storage    StorageConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
	Digest     DigestConfig
	SentryDSN  string
	BcryptCost int
}

// StorageConfig selects the repository backends
type StorageConfig struct {
	Driver          string        // memory, mysql or postgres
	FeedbackBackend string        // empty follows Driver; "redis" overrides feedback only
	Latency         time.Duration // simulated per-operation latency
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds redis configuration for the redis feedback backend
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret  string
	TTLDays int
}

// RateLimitConfig holds per-IP request limits per minute
type RateLimitConfig struct {
	Max     int
	AuthMax int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
}

// DigestConfig holds the feedback digest cron schedule
type DigestConfig struct {
	Schedule string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	storage := loadStorageConfig()

	config := &Config{
		AppMode:    appMode,
		Port:       getEnv("PORT", "3001"),
		Storage:    storage,
		Database:   loadDatabaseConfig(appMode, storage.Driver),
		Redis:      loadRedisConfig(),
		JWT:        loadJWTConfig(appMode),
		RateLimit:  loadRateLimitConfig(),
		Log:        loadLogConfig(appMode),
		Digest:     DigestConfig{Schedule: getEnvAllowEmpty("FEEDBACK_DIGEST_SCHEDULE", "@hourly")},
		SentryDSN:  getEnv("SENTRY_DSN", ""),
		BcryptCost: getEnvInt("BCRYPT_COST", 12),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks settings that have no safe default
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("%sJWT_SECRET is required", modePrefix(c.AppMode))
	}
	switch c.Storage.Driver {
	case DriverMemory, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER: '%s' (must be memory, mysql or postgres)", c.Storage.Driver)
	}
	if c.Storage.FeedbackBackend != "" && c.Storage.FeedbackBackend != "redis" {
		return fmt.Errorf("invalid FEEDBACK_BACKEND: '%s' (must be empty or redis)", c.Storage.FeedbackBackend)
	}
	return nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

func loadStorageConfig() StorageConfig {
	latency, err := time.ParseDuration(getEnv("STORAGE_LATENCY", "0s"))
	if err != nil {
		latency = 0
	}
	return StorageConfig{
		Driver:          strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", DriverMemory))),
		FeedbackBackend: strings.ToLower(strings.TrimSpace(getEnv("FEEDBACK_BACKEND", ""))),
		Latency:         latency,
	}
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode, driver string) DatabaseConfig {
	prefix := modePrefix(mode)

	port, user := "3306", "root"
	if driver == DriverPostgres {
		port, user = "5432", "postgres"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", port),
		User:     getEnv(prefix+"DB_USER", user),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "perceive_reports"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
		Prefix:   getEnv("REDIS_PREFIX", "perceive"),
	}
}

// loadJWTConfig loads JWT config based on mode. The secret has no default.
func loadJWTConfig(mode string) JWTConfig {
	return JWTConfig{
		Secret:  strings.TrimSpace(os.Getenv(modePrefix(mode) + "JWT_SECRET")),
		TTLDays: getEnvInt("TOKEN_TTL_DAYS", 60),
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:     getEnvInt("RATE_LIMIT_MAX", 100),
		AuthMax: getEnvInt("AUTH_RATE_LIMIT_MAX", 10),
	}
}

func loadLogConfig(mode string) LogConfig {
	format := "text"
	if mode == "prod" {
		format = "json"
	}
	return LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", format),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty distinguishes an unset variable from one set to ""
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// TokenTTL returns the token lifetime
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLDays) * 24 * time.Hour
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return origins
}
