package libs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	defaultLoggerName = "gluster-install"
	logSeparator      = "=================================================="
)

var (
	defaultLogger *Logger
	logFile       *os.File
	logLevel      LogLevel
)

// LogLevel represents logging level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger writes timestamped, level-filtered messages to the console and the
// append-only run log file.
type Logger struct {
	name   string
	writer io.Writer
	level  LogLevel
}

// GetLogger returns a logger instance for a module
func GetLogger(name string) *Logger {
	if name == "" {
		name = defaultLoggerName
	}
	if defaultLogger == nil {
		// Fallback logger if not initialized
		return &Logger{
			name:   name,
			writer: os.Stdout,
			level:  LogLevelInfo,
		}
	}
	return &Logger{
		name:   name,
		writer: defaultLogger.writer,
		level:  logLevel,
	}
}

// formatMessage formats a log line:
// "timestamp - logger_name (25 chars, left-aligned) - level - message"
func (l *Logger) formatMessage(level LogLevel, format string, args ...interface{}) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	return fmt.Sprintf("%s - %-25s - %s - %s\n", timestamp, l.name, level.String(), message)
}

// Info logs an INFO level message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level <= LogLevelInfo {
		msg := l.formatMessage(LogLevelInfo, format, args...)
		l.writer.Write([]byte(msg))
	}
}

// Error logs an ERROR level message
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level <= LogLevelError {
		msg := l.formatMessage(LogLevelError, format, args...)
		l.writer.Write([]byte(msg))
	}
}

// Warning logs a WARNING level message
func (l *Logger) Warning(format string, args ...interface{}) {
	if l.level <= LogLevelWarning {
		msg := l.formatMessage(LogLevelWarning, format, args...)
		l.writer.Write([]byte(msg))
	}
}

// Debug logs a DEBUG level message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level <= LogLevelDebug {
		msg := l.formatMessage(LogLevelDebug, format, args...)
		l.writer.Write([]byte(msg))
	}
}

// Printf is an alias for Info to maintain compatibility
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Info(format, args...)
}

// InfoBanner logs a message with separator lines above and below (banner style)
func (l *Logger) InfoBanner(message string) {
	l.Info(logSeparator)
	l.Info("%s", message)
	l.Info(logSeparator)
}

// InfoBannerf logs a formatted message with separator lines above and below
func (l *Logger) InfoBannerf(format string, args ...interface{}) {
	l.Info(logSeparator)
	l.Info(format, args...)
	l.Info(logSeparator)
}

// LogTraceback logs a stack trace for errors
func (l *Logger) LogTraceback(err error) {
	l.Error("Error: %v", err)
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	for i, line := range strings.Split(string(buf[:n]), "\n") {
		if i == 0 {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		l.Error("  %s", line)
	}
}

// InitLogger initializes the default logger (called once at startup). With an
// empty logFilePath a timestamped file is created under logs/.
func InitLogger(level LogLevel, logFilePath string) (*Logger, error) {
	var err error

	if logFilePath == "" {
		logsDir := "logs"
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		logFilePath = filepath.Join(logsDir, fmt.Sprintf("gluster-install_%s.log", timestamp))
	}

	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := &Logger{
		name:   defaultLoggerName,
		writer: io.MultiWriter(os.Stdout, logFile),
		level:  level,
	}
	defaultLogger = logger
	logLevel = level

	return logger, nil
}

// GetDefaultLogger returns the default logger instance
func GetDefaultLogger() *Logger {
	if defaultLogger == nil {
		defaultLogger = &Logger{
			name:   defaultLoggerName,
			writer: os.Stdout,
			level:  LogLevelInfo,
		}
	}
	return defaultLogger
}

// CloseLogFile closes the log file if it's open
func CloseLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
