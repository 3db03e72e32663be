package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger represents a file logger for trading activities
type Logger struct {
	account string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logDir  string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelTrade   LogLevel = "TRADE"
	LogLevelRisk    LogLevel = "RISK"
)

// NewLogger creates a new file logger for the specified account
func NewLogger(account string) (*Logger, error) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", account, timestamp)
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		account: account,
		logFile: file,
		logger:  log.New(file, "", 0),
		logDir:  logDir,
	}

	l.Info("trading session started for account %s", account)
	return l, nil
}

// NewDiscardLogger returns a logger that writes to the standard logger only.
// Useful for tests and tools that do not want log files on disk.
func NewDiscardLogger() *Logger {
	return &Logger{
		account: "test",
		logger:  log.New(os.Stderr, "", 0),
	}
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", timestamp, level, message))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// Trade logs a trading action
func (l *Logger) Trade(format string, args ...interface{}) {
	l.Log(LogLevelTrade, format, args...)
}

// Risk logs a risk-gate decision or halt
func (l *Logger) Risk(format string, args ...interface{}) {
	l.Log(LogLevelRisk, format, args...)
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// LogWarning logs warning with context
func (l *Logger) LogWarning(context string, message string, args ...interface{}) {
	l.Warning("%s", fmt.Sprintf(context+": "+message, args...))
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		l.logger.Println(fmt.Sprintf("[%s] [%s] trading session ended",
			time.Now().Format("2006-01-02 15:04:05"), LogLevelInfo))
		return l.logFile.Close()
	}
	return nil
}
