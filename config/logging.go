package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger writes JSON logs to logFile. When debug is set, text logs are
// also written to stderr.
// The returned cleanup func closes the log file.
func SetupLogger(logFile string, level slog.Level, debug bool) (*slog.Logger, func() error) {
	var handlers []slog.Handler
	if debug {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		}))
		level = slog.LevelDebug
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// fall back to stderr so the failure is visible
		stderr := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		logger := slog.New(stderr)
		logger.Error("failed to open log file, using stderr only", "error", err, "file", logFile)
		if debug {
			return slog.New(handlers[0]), func() error { return nil }
		}
		return logger, func() error { return nil }
	}

	handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
	return slog.New(slogmulti.Fanout(handlers...)), file.Close
}

// SetupLoggerWithWriters is SetupLogger with custom writers, for tests.
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	stderrHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
}
