package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Logger writes run-scoped records to a log file and doubles as the
// pipeline's error sink for per-item extraction failures.
type Logger struct {
	runID  string
	path   string
	file   *os.File
	logger *log.Logger
	echo   bool
}

// New opens a log file under dir. If dir cannot be created or the file
// cannot be opened, it falls back to a directory under the system temp
// dir instead of failing the run.
func New(dir, filename string) (*Logger, error) {
	file, path, err := openLogFile(dir, filename)
	if err != nil {
		fallback := filepath.Join(os.TempDir(), "kura_logs")
		file, path, err = openLogFile(fallback, filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %v", err)
		}
	}

	runID := uuid.NewString()
	logger := log.New(file, "", log.LstdFlags)

	l := &Logger{
		runID:  runID,
		path:   path,
		file:   file,
		logger: logger,
		echo:   true,
	}
	l.logger.Printf("[INFO] run_id=%s: ingestion run started", runID)
	return l, nil
}

func openLogFile(dir, filename string) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", err
	}
	path := filepath.Join(dir, filename)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", err
	}
	return file, path, nil
}

// RunID returns the generated identifier tagged onto every record.
func (l *Logger) RunID() string { return l.runID }

// Path returns the resolved log file location.
func (l *Logger) Path() string { return l.path }

// SetEcho controls whether errors are also printed to stderr.
func (l *Logger) SetEcho(echo bool) { l.echo = echo }

// ExtractError records a per-item extraction failure. It satisfies
// types.ErrorSink and never fails the run.
func (l *Logger) ExtractError(source string, err error) {
	l.logger.Printf("[ERROR] run_id=%s: error loading '%s': %v", l.runID, source, err)
	if l.echo {
		color.New(color.FgRed).Fprintf(os.Stderr, "error loading '%s': %v\n", source, err)
	}
}

// Infof records a run milestone.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger.Printf("[INFO] run_id=%s: %s", l.runID, fmt.Sprintf(format, args...))
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	l.logger.Printf("[INFO] run_id=%s: ingestion run finished", l.runID)
	return l.file.Close()
}
