// Package logging wires the module's slog output. Client packages take a
// plain *slog.Logger; the CLI backs it with a charmbracelet/log handler
// writing to a rotating file, plus stderr in debug mode.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level     string // "debug", "info", "warn", "error"
	ConfigDir string
	Debug     bool // mirror log output to stderr
}

// Setup creates the configured *slog.Logger, sets it as the default, and
// returns it. Unrecognized levels fall back to warn.
func Setup(cfg Config) (*slog.Logger, error) {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "habitly.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	level := parseLevel(cfg.Level)
	if cfg.Debug {
		level = charmlog.DebugLevel
	}

	handler := charmlog.NewWithOptions(writer, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "habitly",
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func parseLevel(level string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.WarnLevel
	}
}
