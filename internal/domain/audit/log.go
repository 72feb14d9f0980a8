package audit

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EmptyLogText is rendered when nothing has been logged yet
const EmptyLogText = "No Lemon Squeezy operations logged."

// Entry is one recorded tool invocation
type Entry struct {
	ID         string
	Timestamp  time.Time
	Operation  string
	Parameters json.RawMessage
}

// Option configures Log
type Option func(*Log)

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(l *Log) {
		l.clock = clock
	}
}

// Log is an in-memory, append-only record of operations.
// It lives as long as the process and is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	clock   func() time.Time
}

// NewLog builds an empty Log
func NewLog(opts ...Option) *Log {
	l := &Log{clock: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append records an operation. Parameters that are not a JSON object are stored as {}.
func (l *Log) Append(operation string, params json.RawMessage) Entry {
	entry := Entry{
		ID:         uuid.NewString(),
		Timestamp:  l.clock().UTC(),
		Operation:  operation,
		Parameters: normalizeParams(params),
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	return entry
}

// Entries returns a copy of all entries in insertion order
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of recorded entries
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Render formats the full history as text, oldest first
func (l *Log) Render() string {
	entries := l.Entries()
	if len(entries) == 0 {
		return EmptyLogText
	}

	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		var b strings.Builder
		b.WriteString("[")
		b.WriteString(e.Timestamp.Format(time.RFC3339Nano))
		b.WriteString("]\nOperation: ")
		b.WriteString(e.Operation)
		b.WriteString("\nParams: ")
		b.WriteString(indent(e.Parameters))
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n")
}

func normalizeParams(params json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return json.RawMessage("{}")
	}

	out := make(json.RawMessage, len(trimmed))
	copy(out, trimmed)
	return out
}

// indent keeps key order, unlike a map round trip
func indent(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
