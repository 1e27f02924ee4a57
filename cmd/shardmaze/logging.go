package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	logFileName = "shardmaze.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging opens dir/shardmaze.log for JSON logs when debug is set
// The terminal belongs to tcell, so nothing is ever written to stdout or stderr
// An oversized previous log is rotated aside with a timestamp suffix
func setupLogging(dir string, debug bool) (zerolog.Logger, *os.File) {
	if !debug {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("shardmaze-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	log.SetOutput(f)
	// Game level numbers are logged under "level"
	zerolog.LevelFieldName = "severity"
	logger := zerolog.New(f).With().Timestamp().Str("app", "shardmaze").Logger()
	return logger, f
}
