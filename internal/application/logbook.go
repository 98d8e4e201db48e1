package application

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/softfang/guildctl/internal/ports"
)

// LogEntry is one line of the operation audit trail.
type LogEntry struct {
	At    time.Time
	Scope string
	Text  string
}

func (e LogEntry) String() string {
	return fmt.Sprintf("(%s) [%s] %s", e.At.Format("15:04:05"), e.Scope, e.Text)
}

// Logbook is the in-memory, newest-first audit trail. It is the only record
// of executed operations: never persisted, cleared on demand.
type Logbook struct {
	clock ports.Clock

	mu      sync.Mutex
	entries []LogEntry
}

func NewLogbook(clock ports.Clock) *Logbook {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Logbook{clock: clock}
}

// Append records one line. Scope is the guild name for guild-scoped actions
// or the account tag for account-scoped ones.
func (l *Logbook) Append(scope, format string, args ...any) {
	entry := LogEntry{
		At:    l.clock.Now(),
		Scope: scope,
		Text:  fmt.Sprintf(format, args...),
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns the log newest-first.
func (l *Logbook) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	for i, entry := range l.entries {
		out[len(l.entries)-1-i] = entry
	}
	return out
}

// Len reports the number of retained lines.
func (l *Logbook) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// CopyText renders the whole log as reverse-chronological plain text for
// clipboard export.
func (l *Logbook) CopyText() string {
	entries := l.Entries()
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = entry.String()
	}
	return strings.Join(lines, "\n")
}

func (l *Logbook) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
