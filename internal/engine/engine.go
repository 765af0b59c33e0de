package engine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/crimson-sun/strictwatch/internal/engine/classifier"
	"github.com/crimson-sun/strictwatch/internal/model"
)

// exceptionKey marks records echoed from System.err. Unclassified incidents
// carrying it are ordinary application exceptions, not policy violations.
const exceptionKey = "System.err"

// Engine turns a finalized group of records into a classified incident.
type Engine struct {
	classifier *classifier.Classifier
	newID      func() string
}

// New creates an Engine with the provided classifier.
func New(cls *classifier.Classifier) *Engine {
	return &Engine{
		classifier: cls,
		newID:      uuid.NewString,
	}
}

// Process builds and classifies an incident from records in arrival order.
// The second return value is false when the group is empty or the incident
// must be suppressed.
func (e *Engine) Process(records []model.LogRecord) (model.Incident, bool) {
	inc, ok := e.Build(records)
	if !ok {
		return model.Incident{}, false
	}
	inc.Kind, _ = e.classifier.Classify(inc.Lines())
	if Suppressed(inc) {
		return inc, false
	}
	return inc, true
}

// Build assembles an unclassified incident. The first record supplies the
// title, key and timestamp; later records become detail lines.
func (e *Engine) Build(records []model.LogRecord) (model.Incident, bool) {
	if len(records) == 0 {
		return model.Incident{}, false
	}
	first := records[0]
	details := make([]string, 0, len(records)-1)
	for _, r := range records[1:] {
		details = append(details, r.Message)
	}
	return model.Incident{
		ID:          e.newID(),
		Title:       first.Message,
		Key:         first.Tag,
		DetailLines: details,
		OccurredAt:  first.ObservedAt,
	}, true
}

// Suppressed reports whether an incident is an unclassified System.err echo.
func Suppressed(inc model.Incident) bool {
	return !inc.Classified() && strings.Contains(inc.Key, exceptionKey)
}
