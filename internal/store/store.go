// Package store keeps the rotating history of reported incidents.
//
// The whole history is persisted as one encoded blob under a single key and
// rewritten on every append. Reads never fail: a missing, unreadable or
// invalid blob is treated as an empty history.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/strictwatch/internal/model"
	"github.com/crimson-sun/strictwatch/internal/storage"
)

const (
	// HistoryKey names the record holding the encoded history.
	HistoryKey = "strictmode/reports"

	// MaxReports is the history cap applied before each append.
	MaxReports = 50
)

// ErrIO wraps failures writing the history back to storage.
var ErrIO = errors.New("report store I/O failure")

// Store is the capacity-bounded, newest-first incident history.
type Store struct {
	kv  storage.KV
	max int
}

// New creates a Store over kv with the default cap.
func New(kv storage.KV) *Store {
	return NewWithMax(kv, MaxReports)
}

// NewWithMax creates a Store with a custom cap. Non-positive values fall
// back to MaxReports.
func NewWithMax(kv storage.KV, max int) *Store {
	if max <= 0 {
		max = MaxReports
	}
	return &Store{kv: kv, max: max}
}

// GetAll returns the history, newest first.
func (s *Store) GetAll(ctx context.Context) []model.Incident {
	blob, err := s.kv.Get(ctx, HistoryKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("report history unreadable", "component", "store", "error", err)
		}
		return []model.Incident{}
	}
	incidents, err := decode(blob)
	if err != nil {
		slog.Warn("report history discarded", "component", "store", "error", err)
		return []model.Incident{}
	}
	return incidents
}

// Get returns the stored incident with the given ID.
func (s *Store) Get(ctx context.Context, id string) (model.Incident, bool) {
	for _, inc := range s.GetAll(ctx) {
		if inc.ID == id {
			return inc, true
		}
	}
	return model.Incident{}, false
}

// Append prepends inc to the history and rewrites it with a single Put.
//
// The cap is applied to the existing history before insertion, so a full
// history holds Max()+1 entries after the append.
func (s *Store) Append(ctx context.Context, inc model.Incident) error {
	incidents := s.GetAll(ctx)
	if len(incidents) > s.max {
		incidents = incidents[:s.max]
	}

	next := make([]model.Incident, 0, len(incidents)+1)
	next = append(next, inc)
	next = append(next, incidents...)

	blob, err := encode(next)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := s.kv.Put(ctx, HistoryKey, blob); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Clear removes the whole history.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, HistoryKey); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
