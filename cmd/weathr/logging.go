package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "weathr.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes logs to logs/weathr.log when debug is set and discards them otherwise
// The terminal belongs to the renderer, so logs never reach stdout or stderr
func setupLogging(debug bool) (*os.File, *slog.Logger) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	if !debug {
		log.SetOutput(io.Discard)
		return nil, discard
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil, discard
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("weathr-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, discard
	}
	log.SetOutput(f)
	return f, slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
