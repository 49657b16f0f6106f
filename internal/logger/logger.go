// Package logger writes structured JSON logs to a file so they never
// interfere with the terminal UI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const logFileName = "debug.log"

var (
	logDir  = filepath.Join(os.Getenv("HOME"), ".config", "rcleaner")
	logFile *os.File
	Log     = slog.New(slog.NewJSONHandler(io.Discard, nil))
)

// Init opens ~/.config/rcleaner/debug.log for appending.
// With debug every level is written, otherwise only WARN and ERROR.
func Init(debug bool) error {
	Close()

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	logFile = f

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	Log = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})).
		With("pid", os.Getpid())
	return nil
}

// SetOutput routes logs to w at the given level. Used by tests and by
// callers that already own a writer.
func SetOutput(w io.Writer, level slog.Level) {
	Log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func Path() string { return filepath.Join(logDir, logFileName) }

func Debug(msg string, args ...any) { Log.Debug(msg, args...) }
func Info(msg string, args ...any)  { Log.Info(msg, args...) }
func Warn(msg string, args ...any)  { Log.Warn(msg, args...) }
func Error(msg string, args ...any) { Log.Error(msg, args...) }

func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
