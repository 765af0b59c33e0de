package model

import (
	"strings"
	"time"
)

// LogRecord is a single parsed diagnostic line, produced by the parser and
// consumed by the incident buffer.
type LogRecord struct {
	Tag        string    // matched source tag, e.g. "StrictMode( 1234):"
	Message    string    // text following the tag
	ObservedAt time.Time // wall clock at parse time
}

// IsContinuation reports whether the record is a stack frame belonging to
// the preceding header line rather than the start of a new incident.
func (r LogRecord) IsContinuation() bool {
	return strings.HasPrefix(strings.TrimLeft(r.Message, " \t"), "at ")
}
