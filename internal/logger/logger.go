// Package logger configures the process-wide structured logger.
package logger

import (
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Init sets up log.DefaultLogger. format is "json" or "console" (default).
func Init(level, format string) {
	log.DefaultLogger = New(level, format)
}

// New builds a logger without installing it globally.
func New(level, format string) log.Logger {
	logger := log.Logger{
		Level:      parseLevel(level),
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		logger.Writer = &log.IOWriter{Writer: os.Stderr}
	} else {
		logger.Writer = &log.ConsoleWriter{
			ColorOutput:    log.IsTerminal(os.Stderr.Fd()),
			QuoteString:    true,
			EndWithMessage: true,
			Writer:         os.Stderr,
		}
	}
	return logger
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
