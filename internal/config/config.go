// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Autosave  AutosaveConfig
	Validator ServiceConfig
	Media     ServiceConfig
	// APIKey is sent as X-API-Key to the validator and media services
	APIKey string
	// MaxUploadSize is the largest accepted block media file in bytes
	MaxUploadSize int64
	// MaxBodySize caps JSON request bodies in bytes
	MaxBodySize int64
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// AutosaveConfig holds autosave settings
type AutosaveConfig struct {
	Interval time.Duration
}

// ServiceConfig holds the location of a remote service
type ServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

const (
	defaultAutosaveInterval = 30 * time.Second
	defaultServiceTimeout   = 10 * time.Second
	defaultMaxUploadSize    = 50 * 1024 * 1024
	defaultMaxBodySize      = 1024 * 1024
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Autosave configuration
	cfg.Autosave.Interval, err = durationEnv("AUTOSAVE_INTERVAL", defaultAutosaveInterval)
	if err != nil {
		return nil, err
	}
	if cfg.Autosave.Interval < time.Second {
		return nil, fmt.Errorf("AUTOSAVE_INTERVAL must be at least 1s")
	}

	// Remote services
	cfg.Validator.BaseURL = os.Getenv("VALIDATOR_BASE_URL")
	if cfg.Validator.BaseURL == "" {
		return nil, fmt.Errorf("VALIDATOR_BASE_URL is required")
	}
	cfg.Validator.Timeout, err = durationEnv("VALIDATOR_TIMEOUT", defaultServiceTimeout)
	if err != nil {
		return nil, err
	}

	cfg.Media.BaseURL = os.Getenv("MEDIA_BASE_URL")
	if cfg.Media.BaseURL == "" {
		return nil, fmt.Errorf("MEDIA_BASE_URL is required")
	}
	cfg.Media.Timeout, err = durationEnv("MEDIA_TIMEOUT", 2*time.Minute)
	if err != nil {
		return nil, err
	}

	// API Key configuration (optional, for service-to-service authentication)
	cfg.APIKey = os.Getenv("API_KEY")

	cfg.MaxUploadSize = defaultMaxUploadSize
	if v := os.Getenv("MAX_UPLOAD_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %q", v)
		}
		cfg.MaxUploadSize = size
	}

	cfg.MaxBodySize = defaultMaxBodySize
	if v := os.Getenv("MAX_BODY_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_BODY_SIZE: %q", v)
		}
		cfg.MaxBodySize = size
	}

	return cfg, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// parseOrigins splits a comma-separated origin list, allowing all origins when it is empty
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
