package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	initOnce sync.Once
	logFile  *os.File
	level    = new(slog.LevelVar)
)

// Init points the default slog logger at the log file under dir,
// creating the directory as needed. Only the first call takes effect.
// The returned func closes the file and should run at shutdown.
func Init(dir string, lvl slog.Level) (close func(), err error) {
	initOnce.Do(func() {
		level.Set(lvl)
		if err = os.MkdirAll(dir, 0o755); err != nil {
			err = fmt.Errorf("log dir: %w", err)
			return
		}
		path := filepath.Join(dir, "shrimp.log")
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			err = fmt.Errorf("log file: %w", err)
			return
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})))
		slog.Info("logger initialized", "file", path, "level", lvl.String())
	})
	if err != nil {
		return func() {}, err
	}
	return func() {
		if logFile != nil {
			logFile.Close()
		}
	}, nil
}

// SetLevel adjusts the log level at runtime.
func SetLevel(lvl slog.Level) { level.Set(lvl) }

// Discard silences the default logger. Used by tests.
func Discard() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
