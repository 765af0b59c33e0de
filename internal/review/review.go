// Package review owns the on/off switch for the incident review screen.
// Changes take effect in memory immediately and are persisted in the
// background by a single worker, which always saves the latest state.
package review

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/crimson-sun/strictwatch/internal/prefs"
)

// Toggle is the review-screen switch.
type Toggle struct {
	file *prefs.File

	mu      sync.Mutex
	enabled bool
	closed  bool
	dirty   chan struct{} // holds at most one pending write signal
	done    chan struct{}
	lastErr error
}

// New loads the persisted state and starts the write worker. A corrupt
// prefs file reads as disabled and is replaced by the next write.
func New(file *prefs.File) (*Toggle, error) {
	p, err := file.Load()
	if errors.Is(err, prefs.ErrCorrupt) {
		slog.Warn("ignoring unreadable review setting", "component", "review", "path", file.Path(), "error", err)
		p, err = prefs.Prefs{}, nil
	}
	if err != nil {
		return nil, err
	}
	t := &Toggle{
		file:    file,
		enabled: p.ReviewEnabled,
		dirty:   make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go t.run()
	return t, nil
}

// SetEnabled records the new state and queues the write. It never blocks on
// the write; changes made while one is in flight collapse into the next
// write, which saves the latest state.
func (t *Toggle) SetEnabled(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		slog.Warn("review toggle closed, change ignored", "component", "review", "enabled", on)
		return
	}
	t.enabled = on
	select {
	case t.dirty <- struct{}{}:
	default:
	}
}

// Enabled reports the current state.
func (t *Toggle) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// Close waits for queued writes and returns the last write error, if any.
func (t *Toggle) Close() error {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.dirty)
	}
	t.mu.Unlock()

	<-t.done

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

func (t *Toggle) run() {
	defer close(t.done)
	for range t.dirty {
		t.mu.Lock()
		on := t.enabled
		t.mu.Unlock()

		err := t.persist(on)
		if err != nil {
			slog.Error("saving review setting", "component", "review", "error", err)
		}
		t.mu.Lock()
		t.lastErr = err
		t.mu.Unlock()
	}
}

func (t *Toggle) persist(on bool) error {
	p, err := t.file.Load()
	if err != nil {
		// Rewrite a corrupt file rather than keep failing.
		p = prefs.Prefs{}
	}
	p.ReviewEnabled = on
	return t.file.Save(p)
}
