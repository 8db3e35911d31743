package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrInvalid is wrapped by Validate.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	World    WorldConfig
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Database drivers accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNone     = "none"
)

type DatabaseConfig struct {
	Driver   string
	URL      string
	Path     string
	MaxConns int
}

type LoggingConfig struct {
	Level     string
	Format    string
	Prefix    string
	Timestamp bool
}

type WorldConfig struct {
	// Seed is nil when no seed is configured; the world then keeps its stored seed
	// or picks a random one.
	Seed         *int64
	TickInterval time.Duration
	// PreloadRadius is the chunk radius around the origin warmed at startup.
	// Negative disables warm-up.
	PreloadRadius  int
	PropertiesFile string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            getEnvStr("SERVER_HOST", ""),
			Port:            getEnvStr("SERVER_PORT", "8080"),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver:   getEnvStr("DB_DRIVER", DriverSQLite),
			URL:      getEnvStr("DATABASE_URL", "postgres://localhost:5432/worldgen?sslmode=disable"),
			Path:     getEnvStr("DB_PATH", "./world.db"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 8),
		},
		Logging: LoggingConfig{
			Level:     getEnvStr("LOG_LEVEL", "info"),
			Format:    getEnvStr("LOG_FORMAT", "text"),
			Prefix:    getEnvStr("LOG_PREFIX", "worldgen"),
			Timestamp: getEnvBool("LOG_TIMESTAMP", true),
		},
		World: WorldConfig{
			Seed:           getEnvInt64Ptr("WORLD_SEED"),
			TickInterval:   getEnvDuration("TICK_INTERVAL", 100*time.Millisecond),
			PreloadRadius:  getEnvInt("WORLD_PRELOAD_RADIUS", 1),
			PropertiesFile: getEnvStr("PROPERTIES_FILE", DefaultPropertiesFile),
		},
	}
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	if c.World.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalid, c.World.TickInterval)
	}
	if c.Database.MaxConns < 0 {
		return fmt.Errorf("%w: DB_MAX_CONNS must not be negative, got %d", ErrInvalid, c.Database.MaxConns)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverNone:
	default:
		return fmt.Errorf("%w: unknown DB_DRIVER %q", ErrInvalid, c.Database.Driver)
	}
	return nil
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64Ptr(key string) *int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return &intValue
		}
	}
	return nil
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
