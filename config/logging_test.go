package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logFile, err := SetupLogging(false, "warn")
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}

	if output := log.Writer(); output != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", output)
	}
	if logrus.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %v", logrus.GetLevel())
	}
}

func TestSetupLogging_InvalidLevelFallsBack(t *testing.T) {
	if _, err := SetupLogging(false, "chatty"); err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	if logrus.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level fallback, got %v", logrus.GetLevel())
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)
	defer SetupLogging(false, "warn")

	logFile, err := SetupLogging(true, "warn")
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	logPath := filepath.Join(logDir, logFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("Expected log file to be created")
	}

	// Standard logger output lands in the same file
	log.Println("Test log message")
	logrus.Debug("Test debug entry")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	defer os.RemoveAll(logDir)
	defer SetupLogging(false, "warn")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	logFile, err := SetupLogging(true, "warn")
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	defer os.RemoveAll(logDir)
	defer SetupLogging(false, "warn")

	logFile, err := SetupLogging(true, "warn")
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	defer logFile.Close()

	if output := log.Writer(); output == os.Stdout || output == os.Stderr {
		t.Error("Log output should not be stdout or stderr")
	}
	if out := logrus.StandardLogger().Out; out == os.Stdout || out == os.Stderr {
		t.Error("logrus output should not be stdout or stderr")
	}
}
