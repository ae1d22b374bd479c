package miglog

import (
	"fmt"
	"os"
	"sync"
)

// GlobalLog appends per-file entries, prefixed with the originating file
// path, to one cross-run log file. Appends are serialized behind a mutex:
// the batch orchestrator fans files out to workers, and concurrent
// unsynchronized appends to one file are unsafe.
type GlobalLog struct {
	mu sync.Mutex
	f  *os.File
}

// OpenGlobal opens (or creates) the global log in append mode and writes a
// run header. The file is never truncated.
func OpenGlobal(path, runID string) (*GlobalLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open global log %s: %w", path, err)
	}
	if _, err := fmt.Fprintf(f, "=== run %s ===\n", runID); err != nil {
		f.Close()
		return nil, fmt.Errorf("write global log header: %w", err)
	}
	return &GlobalLog{f: f}, nil
}

// Append writes one file's entries under the file path prefix. The whole
// block is written under the lock so entries from one file never interleave
// with another's.
func (g *GlobalLog) Append(filePath string, entries []Entry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range entries {
		if _, err := fmt.Fprintf(g.f, "%s | %s | %s\n", filePath, e.Level, e.Message); err != nil {
			return fmt.Errorf("append global log: %w", err)
		}
	}
	return nil
}

// Close closes the underlying file.
func (g *GlobalLog) Close() error {
	return g.f.Close()
}
