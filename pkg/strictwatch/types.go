package strictwatch

import (
	"time"

	"github.com/crimson-sun/strictwatch/internal/model"
)

// Record is one parsed log line.
type Record struct {
	Tag        string    `json:"tag"`     // matched source tag, e.g. "StrictMode( 4242):"
	Message    string    `json:"message"` // text after the tag
	ObservedAt time.Time `json:"observed_at"`
}

// Continuation reports whether the record is a stack frame line.
func (r Record) Continuation() bool {
	return model.LogRecord{Tag: r.Tag, Message: r.Message}.IsContinuation()
}

// Incident is one reported violation.
// This is the stable public type; internal representations may change
// without breaking consumers.
type Incident struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind,omitempty"` // empty when no detector matched
	Title       string    `json:"title"`
	Key         string    `json:"key"`
	DetailLines []string  `json:"detail_lines"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Notification is delivered to the WithNotifyFunc callback once per incident.
type Notification struct {
	Title    string
	Body     string
	HeadsUp  bool
	Payload  string // self-contained encoding of the incident, see `strictwatch show --payload`
	Incident Incident
}

func incidentFromModel(inc model.Incident) Incident {
	return Incident{
		ID:          inc.ID,
		Kind:        Kind(inc.Kind),
		Title:       inc.Title,
		Key:         inc.Key,
		DetailLines: append([]string(nil), inc.DetailLines...),
		OccurredAt:  inc.OccurredAt,
	}
}
