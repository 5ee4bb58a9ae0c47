package jobs

import (
	"os"
	"strings"
	"sync"
)

// LogWriter appends lines to a flat text file. The file is opened in
// append mode on every write so rotation or deletion between runs never
// breaks a job; a mutex serializes writers within the process.
type LogWriter struct {
	path string
	mu   sync.Mutex
}

// NewLogWriter creates a writer for the given path.
func NewLogWriter(path string) *LogWriter {
	return &LogWriter{path: path}
}

// Append writes one line, adding the trailing newline if missing.
func (w *LogWriter) Append(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, err = f.WriteString(line)
	return err
}
