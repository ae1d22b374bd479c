// Package miglog is the migration audit log: an ordered per-file record of
// every decision the engine made, rendered into the migrated document so a
// reviewer can audit one page without external tooling, plus a cross-run
// global log for centralized audit.
package miglog

import (
	"fmt"
	"strings"
)

// Level is the severity of a log entry.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Entry is one migration decision record.
type Entry struct {
	Level   Level
	Message string
}

// Log accumulates entries for a single file in the order they happened.
// It is not safe for concurrent use; each file's pipeline owns its own Log.
type Log struct {
	entries []Entry
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Infof records an informational entry.
func (l *Log) Infof(format string, args ...any) {
	l.append(Info, format, args...)
}

// Warnf records a warning entry.
func (l *Log) Warnf(format string, args ...any) {
	l.append(Warning, format, args...)
}

// Errorf records an error entry.
func (l *Log) Errorf(format string, args ...any) {
	l.append(Error, format, args...)
}

func (l *Log) append(level Level, format string, args ...any) {
	l.entries = append(l.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Entries returns the recorded entries in order.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Warnings returns the number of warning entries.
func (l *Log) Warnings() int {
	n := 0
	for _, e := range l.entries {
		if e.Level == Warning {
			n++
		}
	}
	return n
}

// Render produces the multi-line summary embedded into the migrated
// document's migration-summary field.
func (l *Log) Render() string {
	var b strings.Builder
	b.WriteString("=== MIGRATION SUMMARY ===\n")
	if len(l.entries) == 0 {
		b.WriteString("(no entries)\n")
		return b.String()
	}
	for _, e := range l.entries {
		b.WriteString(e.Level.String())
		b.WriteString(": ")
		b.WriteString(e.Message)
		b.WriteByte('\n')
	}
	return b.String()
}
