package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDir      = "logs"
	logFileName = "vidascii.log"
	maxLogSize  = 10 * 1024 * 1024
)

// SetupLogging routes logrus and the standard logger
// Without debug, logrus writes warnings and above to stderr and the standard
// logger is discarded. With debug, both go to logs/vidascii.log at debug level.
// The returned file is nil unless debug is set.
func SetupLogging(debug bool, level string) (*os.File, error) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !debug, FullTimestamp: debug})

	if !debug {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.WarnLevel
		}
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(lvl)
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("vidascii_%s.log", time.Now().Format("20060102_150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	logrus.SetOutput(f)
	logrus.SetLevel(logrus.DebugLevel)

	// ffmpeg-go prints compiled command lines through the standard logger
	log.SetFlags(0)
	log.SetOutput(logrus.StandardLogger().WriterLevel(logrus.DebugLevel))

	logrus.WithField("pid", os.Getpid()).Debug("Logging started")
	return f, nil
}
