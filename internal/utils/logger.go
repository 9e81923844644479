package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type RunLogger struct {
	file    *os.File
	logger  *log.Logger
	verbose bool
}

// NewRunLogger writes leveled log lines to out. When logsDir is set, lines are
// also written to logs/<name>/run_<name>_<timestamp>.log under logsDir.
func NewRunLogger(name, logsDir string, out io.Writer, verbose bool) (*RunLogger, error) {
	if out == nil {
		out = os.Stdout
	}

	rl := &RunLogger{verbose: verbose}
	writer := out

	if logsDir != "" {
		// Sanitize name for file system
		sanitized := strings.ReplaceAll(strings.ToLower(name), " ", "_")

		dir := filepath.Join(logsDir, sanitized)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		logPath := filepath.Join(dir, fmt.Sprintf("run_%s_%s.log", sanitized, timestamp))

		file, err := os.Create(logPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}

		rl.file = file
		writer = io.MultiWriter(out, file)
	}

	rl.logger = log.New(writer, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	return rl, nil
}

// Discard returns a logger that drops everything.
func Discard() *RunLogger {
	return &RunLogger{logger: log.New(io.Discard, "", 0)}
}

func (rl *RunLogger) LogInfo(format string, v ...interface{}) {
	rl.log("INFO", format, v...)
}

func (rl *RunLogger) LogError(format string, v ...interface{}) {
	rl.log("ERROR", format, v...)
}

func (rl *RunLogger) LogDebug(format string, v ...interface{}) {
	if !rl.verbose {
		return
	}
	rl.log("DEBUG", format, v...)
}

func (rl *RunLogger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	rl.logger.Printf("[%s] %s", level, message)
}

// Path returns the log file path, or "" when logging only to out.
func (rl *RunLogger) Path() string {
	if rl.file == nil {
		return ""
	}
	return rl.file.Name()
}

func (rl *RunLogger) Close() error {
	if rl.file == nil {
		return nil
	}
	return rl.file.Close()
}
