package model

import "time"

// Incident is a coalesced group of log records believed to describe one
// violation. Immutable once built by the engine.
type Incident struct {
	ID          string        `json:"id"`
	Kind        ViolationKind `json:"kind,omitempty"`
	Title       string        `json:"title"`        // first record's message
	Key         string        `json:"key"`          // first record's tag
	DetailLines []string      `json:"detail_lines"` // remaining messages, in arrival order
	OccurredAt  time.Time     `json:"occurred_at"`
}

// Classified reports whether a detector matched the incident.
func (i Incident) Classified() bool {
	return i.Kind != KindNone
}

// Lines returns the title followed by the detail lines.
func (i Incident) Lines() []string {
	lines := make([]string, 0, len(i.DetailLines)+1)
	lines = append(lines, i.Title)
	return append(lines, i.DetailLines...)
}
