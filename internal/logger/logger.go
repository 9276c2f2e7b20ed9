package logger

import (
	"os"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// std is the process-wide logger shared by every package.
var std = logrus.New()

// Initialize sets up the logger with the specified level. Output goes to
// stderr so log lines never interleave with the stdio transport on stdout.
func Initialize(level string) {
	std.SetOutput(os.Stderr)
	std.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	std.SetLevel(parseLevel(level))
}

// parseLevel converts a level string to a logrus level, defaulting to info
func parseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	std.Infof(format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	std.Warnf(format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	std.Errorf(format, v...)
}

// ErrorWithStack logs an error with a stack trace
func ErrorWithStack(err error) {
	if err == nil {
		return
	}
	std.Errorf("%v\n%s", err, debug.Stack())
}

// RequestLog logs details of an outbound HTTP request
func RequestLog(method, url string) {
	Debug("HTTP Request: %s %s", method, url)
}

// ResponseLog logs details of an HTTP response
func ResponseLog(statusCode int, bodySize int) {
	Debug("HTTP Response: status %d (%d bytes)", statusCode, bodySize)
}
