package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is the debug log level
	LevelDebug LogLevel = iota
	// LevelInfo is the info log level
	LevelInfo
	// LevelWarn is the warning log level
	LevelWarn
	// LevelError is the error log level
	LevelError
)

var (
	currentLevel LogLevel
	levelOnce    sync.Once
)

// ParseLevel resolves a level from the DEBUG and LOG_LEVEL values.
// A truthy DEBUG wins; unknown LOG_LEVEL values mean info.
func ParseLevel(debug, level string) LogLevel {
	switch strings.ToLower(debug) {
	case "1", "true", "yes", "on":
		return LevelDebug
	}

	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func initLevel() {
	levelOnce.Do(func() {
		currentLevel = ParseLevel(os.Getenv("DEBUG"), os.Getenv("LOG_LEVEL"))
	})
}

// GetLevel returns the current log level
func GetLevel() LogLevel {
	initLevel()
	return currentLevel
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

func logAt(level LogLevel, tag, format string, args ...interface{}) {
	if GetLevel() > level {
		return
	}
	log.Printf(tag+format, args...)
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug)
func Debug(format string, args ...interface{}) {
	logAt(LevelDebug, "[DEBUG] ", format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	logAt(LevelInfo, "[INFO] ", format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	logAt(LevelWarn, "[WARN] ", format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	logAt(LevelError, "[ERROR] ", format, args...)
}

// Fatal logs an error message and exits
func Fatal(format string, args ...interface{}) {
	log.Fatalf("[FATAL] "+format, args...)
}

// Logger tags every message with a fixed scope, e.g. a stream ID.
type Logger struct {
	prefix string
}

// Scoped returns a Logger whose lines carry "[scope]" after the level.
func Scoped(scope string) *Logger {
	return &Logger{prefix: "[" + scope + "] "}
}

// Prefix returns the tag prepended to each message.
func (l *Logger) Prefix() string {
	return l.prefix
}

// Debug logs a scoped debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	logAt(LevelDebug, "[DEBUG] "+l.prefix, format, args...)
}

// Info logs a scoped info message.
func (l *Logger) Info(format string, args ...interface{}) {
	logAt(LevelInfo, "[INFO] "+l.prefix, format, args...)
}

// Warn logs a scoped warning.
func (l *Logger) Warn(format string, args ...interface{}) {
	logAt(LevelWarn, "[WARN] "+l.prefix, format, args...)
}

// Error logs a scoped error.
func (l *Logger) Error(format string, args ...interface{}) {
	logAt(LevelError, "[ERROR] "+l.prefix, format, args...)
}

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}
