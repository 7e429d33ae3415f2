package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"gitlab.com/tinyland/lab/dayboard/pkg/config"
)

// newLogger writes text records to the rotating log file and, when mirror
// is set, to stderr as well. verbose forces debug level.
func newLogger(cfg config.GeneralConfig, verbose, mirror bool) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	var w io.Writer = file
	if mirror {
		w = io.MultiWriter(os.Stderr, file)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, file, nil
}
