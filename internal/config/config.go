package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port             string
	DatabaseDriver   string
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseDebug    bool
	SQLitePath       string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	CacheTTL         time.Duration
	LogFile          string
	LogLevel         string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("APP_PORT", "8080"),
		DatabaseDriver:   getEnv("DB_DRIVER", DriverPostgres),
		DatabaseHost:     getEnv("POSTGRES_HOST", "localhost"),
		DatabasePort:     getEnv("POSTGRES_PORT", "5432"),
		DatabaseUser:     os.Getenv("POSTGRES_USER"),
		DatabasePassword: os.Getenv("POSTGRES_PASSWORD"),
		DatabaseName:     getEnv("POSTGRES_DB", "products"),
		DatabaseDebug:    os.Getenv("DB_DEBUG") == "true",
		SQLitePath:       getEnv("SQLITE_PATH", "products.db"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		CacheTTL:         getEnvAsSeconds("CACHE_TTL", 300),
		LogFile:          getEnv("LOG_FILE", "app.log"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ReadTimeout:      getEnvAsSeconds("READ_TIMEOUT", 15),
		WriteTimeout:     getEnvAsSeconds("WRITE_TIMEOUT", 15),
		ShutdownTimeout:  getEnvAsSeconds("SHUTDOWN_TIMEOUT", 30),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q, expected %q or %q", c.DatabaseDriver, DriverPostgres, DriverSQLite)
	}
	if c.Port == "" {
		return fmt.Errorf("APP_PORT is empty")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	return nil
}

// CacheEnabled reports whether a Redis host was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSeconds(key string, defaultValue int) time.Duration {
	seconds := defaultValue
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			seconds = parsed
		}
	}
	return time.Duration(seconds) * time.Second
}
