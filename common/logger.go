package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// AppLogger writes leveled lines to the console and, optionally, to a
// size-rotated file.
type AppLogger struct {
	mu          sync.Mutex
	level       LogLevel
	console     io.Writer
	file        *rotatingFile
	maxFileSize int64
	maxBackups  int
}

// LogConfig holds configuration options for the logger.
type LogConfig struct {
	Level       LogLevel
	EnableFile  bool
	Dir         string    // log directory, defaults to GetLogDir()
	Console     io.Writer // console destination, defaults to stderr
	MaxFileSize int64     // in bytes, default 5MB
	MaxBackups  int       // number of rotated files to keep, default 5
}

var _ Logger = (*AppLogger)(nil)

var (
	defaultLogger *AppLogger
	loggerOnce    sync.Once
)

const (
	defaultMaxFileSize = 5 * 1024 * 1024 // 5MB
	defaultMaxBackups  = 5
)

// NewLogger returns a logger writing to console only.
func NewLogger(level LogLevel, console io.Writer) *AppLogger {
	return &AppLogger{
		level:       level,
		console:     console,
		maxFileSize: defaultMaxFileSize,
		maxBackups:  defaultMaxBackups,
	}
}

// GetLogger returns the singleton logger instance.
func GetLogger() *AppLogger {
	loggerOnce.Do(func() {
		defaultLogger = NewLogger(LevelInfo, os.Stderr)
	})
	return defaultLogger
}

// InitLogger initializes the logger with custom configuration.
// Should be called early in application startup.
func InitLogger(config LogConfig) error {
	logger := GetLogger()
	logger.SetLevel(config.Level)
	if config.Console != nil {
		logger.SetOutput(config.Console)
	}

	logger.mu.Lock()
	if config.MaxFileSize > 0 {
		logger.maxFileSize = config.MaxFileSize
	}
	if config.MaxBackups > 0 {
		logger.maxBackups = config.MaxBackups
	}
	logger.mu.Unlock()

	if !config.EnableFile {
		return nil
	}
	dir := config.Dir
	if dir == "" {
		dir = GetLogDir()
	}
	if dir == "" {
		return WrapError(os.ErrNotExist, "no log directory")
	}
	return logger.EnableFileLogging(dir)
}

// SetLevel sets the minimum log level.
func (l *AppLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput sets the console destination.
func (l *AppLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
}

// EnableFileLogging mirrors every line into LogFileName inside logDir.
// The file is rotated once it exceeds the configured size.
func (l *AppLogger) EnableFileLogging(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := openRotatingFile(logDir, l.maxFileSize, l.maxBackups)
	if err != nil {
		return err
	}
	if l.file != nil {
		l.file.Close()
	}
	l.file = file
	return nil
}

// GetLogDir returns the log directory path.
func GetLogDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, "logs")
}

// log writes a formatted log message.
func (l *AppLogger) log(level LogLevel, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	caller := "???"
	if _, file, line, ok := runtime.Caller(2); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	line := fmt.Sprintf("%s [%s] %s: %s\n",
		time.Now().Format("2006/01/02 15:04:05"), level, caller, msg)

	if l.console != nil {
		io.WriteString(l.console, line)
	}
	if l.file != nil {
		if _, err := l.file.Write([]byte(line)); err != nil && l.console != nil {
			fmt.Fprintf(l.console, "log file write failed: %v\n", err)
		}
	}
}

// Debug logs a debug message.
func (l *AppLogger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *AppLogger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *AppLogger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *AppLogger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}

// Shorthand functions for default logger.

// LogDebug logs a debug message to the default logger.
func LogDebug(msg string, args ...interface{}) {
	GetLogger().Debug(msg, args...)
}

// LogInfo logs an info message to the default logger.
func LogInfo(msg string, args ...interface{}) {
	GetLogger().Info(msg, args...)
}

// LogWarn logs a warning message to the default logger.
func LogWarn(msg string, args ...interface{}) {
	GetLogger().Warn(msg, args...)
}

// LogError logs an error message to the default logger.
func LogError(msg string, args ...interface{}) {
	GetLogger().Error(msg, args...)
}

// Close closes the log file. Should be called on application shutdown.
func (l *AppLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// CloseLogger closes the default logger.
func CloseLogger() error {
	return GetLogger().Close()
}
