package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// InitLogger initializes the global logger with configuration from environment variables
func InitLogger() {
	Logger = log.New(os.Stderr)
	level := ParseLevel(os.Getenv("LOG_LEVEL"))
	SetLevel(Logger, level)
	Logger.SetReportTimestamp(true)

	Logger.Debug("Logger initialized", "level", level)
}

// ParseLevel maps a free-form level name to a LogLevel. Unknown names fall back to info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// SetLevel configures the logger with the specified level
func SetLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithComponent tags every line with the component name.
func WithComponent(name string) *log.Logger {
	return WithFields("component", name)
}

// WithChunkCoords creates a logger with chunk coordinate context
func WithChunkCoords(chunkX, chunkY int32) *log.Logger {
	return WithFields("chunk_x", chunkX, "chunk_y", chunkY)
}

// WithSeed creates a logger carrying the world seed.
func WithSeed(seed int64) *log.Logger {
	return WithFields("seed", seed)
}
