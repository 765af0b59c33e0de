package multi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/strictwatch/internal/notify"
)

// Sink is a named notifier. The name labels its errors.
type Sink struct {
	Name     string
	Notifier notify.Notifier
}

// Multi fans out notifications to several sinks in order. A failing sink
// does not stop delivery to the rest.
type Multi struct {
	sinks []Sink
}

// New creates a Multi over the given sinks.
func New(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Notify delivers to every sink. The returned error joins each failure,
// labelled with the sink name and the incident ID.
func (m *Multi) Notify(ctx context.Context, n notify.Notification) error {
	var errs []error
	delivered := 0
	for _, s := range m.sinks {
		if err := s.Notifier.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s sink: incident %s: %w", s.Name, n.Target.IncidentID, err))
			continue
		}
		delivered++
	}
	if len(errs) > 0 && delivered > 0 {
		slog.Debug("notification partially delivered", "component", "notify",
			"incident", n.Target.IncidentID, "kind", n.Kind,
			"delivered", delivered, "failed", len(errs))
	}
	return errors.Join(errs...)
}

// Close closes every sink, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Notifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s sink: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}
