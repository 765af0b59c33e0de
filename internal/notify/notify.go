// Package notify delivers one notification per reported incident.
package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crimson-sun/strictwatch/internal/engine/compactor"
	"github.com/crimson-sun/strictwatch/internal/model"
)

// DefaultTitle is used for incidents no detector matched.
const DefaultTitle = "StrictMode violation"

// ErrTarget reports a click target whose payload cannot be decoded.
var ErrTarget = errors.New("invalid notification target")

// Notifier defines the interface for notification sinks.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
	Close() error
}

// Func adapts a plain function to a Notifier.
type Func func(ctx context.Context, n Notification) error

func (f Func) Notify(ctx context.Context, n Notification) error { return f(ctx, n) }
func (f Func) Close() error                                     { return nil }

// Notification is the user-facing message for one incident.
type Notification struct {
	Title      string              `json:"title"`
	Body       string              `json:"body"`
	Kind       model.ViolationKind `json:"kind,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
	Target     Target              `json:"target"`
	HeadsUp    bool                `json:"heads_up,omitempty"`
}

// Target is what opening a notification leads to: the stored incident, or
// the self-contained payload when the store no longer holds it.
type Target struct {
	IncidentID string `json:"incident_id"`
	Payload    string `json:"payload"`
}

// Build creates the notification for inc. The payload carries the incident
// compacted by c.
func Build(inc model.Incident, c *compactor.Compactor, headsUp bool) (Notification, error) {
	title := DefaultTitle
	if inc.Classified() {
		title = inc.Kind.Name()
	}
	target, err := EncodeTarget(c.Compact(inc))
	if err != nil {
		return Notification{}, err
	}
	return Notification{
		Title:      title,
		Body:       fmt.Sprintf("%s\nRun `strictwatch show %s` for more detail.", compactor.Summary(inc), inc.ID),
		Kind:       inc.Kind,
		OccurredAt: inc.OccurredAt,
		Target:     target,
		HeadsUp:    headsUp,
	}, nil
}

// EncodeTarget encodes inc as base64url JSON.
func EncodeTarget(inc model.Incident) (Target, error) {
	data, err := json.Marshal(inc)
	if err != nil {
		return Target{}, fmt.Errorf("notify: encode target: %w", err)
	}
	return Target{
		IncidentID: inc.ID,
		Payload:    base64.RawURLEncoding.EncodeToString(data),
	}, nil
}

// DecodeTarget recovers the incident carried by t.
func DecodeTarget(t Target) (model.Incident, error) {
	data, err := base64.RawURLEncoding.DecodeString(t.Payload)
	if err != nil {
		return model.Incident{}, fmt.Errorf("%w: %w", ErrTarget, err)
	}
	var inc model.Incident
	if err := json.Unmarshal(data, &inc); err != nil {
		return model.Incident{}, fmt.Errorf("%w: %w", ErrTarget, err)
	}
	if inc.ID == "" || (t.IncidentID != "" && t.IncidentID != inc.ID) {
		return model.Incident{}, fmt.Errorf("%w: incident id mismatch", ErrTarget)
	}
	return inc, nil
}
