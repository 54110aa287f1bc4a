// internal/logging/logging.go
// Package logging owns the process-wide logrus logger used by the CLI and
// handed to the extraction engine.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	logFile *os.File
	logger  = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l
}

// Init sends log output to logPath, creating parent directories and
// appending to an existing file. An empty path discards all output. level
// is a logrus level name; "" means info.
func Init(logPath, level string) error {
	mu.Lock()
	defer mu.Unlock()

	lvl := logrus.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var out io.Writer = io.Discard
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		out = file
	}

	logger.SetOutput(out)
	logger.SetLevel(lvl)
	return nil
}

// Close flushes and releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(io.Discard)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Entry returns a logger entry tagged with component.
func Entry(component string) *logrus.Entry {
	return logger.WithField("component", component)
}

func LogEvent(format string, args ...any) {
	logger.Info(fmt.Sprintf(format, args...))
}

// LogStage records one pipeline step over an input source.
func LogStage(stage, source, tool string, payload any) {
	logger.Info(buildStageMessage(stage, source, tool, payload))
}

func buildStageMessage(stage, source, tool string, payload any) string {
	st := strings.TrimSpace(stage)
	if st != "" {
		st = strings.ToUpper(st)
	}
	sourceValue := strings.TrimSpace(source)
	if sourceValue == "" {
		sourceValue = "stdin"
	}
	parts := []string{fmt.Sprintf("[%s]", st)}
	parts = append(parts, fmt.Sprintf("source=%s", sourceValue))
	if tool = strings.TrimSpace(tool); tool != "" {
		parts = append(parts, fmt.Sprintf("tool=%s", tool))
	}
	parts = append(parts, fmt.Sprintf("payload=%s", formatPayload(payload)))
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
