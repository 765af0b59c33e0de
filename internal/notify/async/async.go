package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crimson-sun/strictwatch/internal/notify"
)

const (
	defaultBufferSize      = 64
	defaultDrainTimeout    = 5 * time.Second
	defaultDeliveryTimeout = 30 * time.Second
)

// ErrClosed is returned by Notify after Close.
var ErrClosed = errors.New("async notifier closed")

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets how many notifications may wait for delivery. Default: 64.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// WithOnError sets the callback invoked when delivering n fails.
// Default: logs a warning naming the incident.
func WithOnError(f func(n notify.Notification, err error)) Option {
	return func(a *Async) { a.errFunc = f }
}

// WithDropOnFull makes Notify return immediately, dropping the
// notification, when the buffer is full.
func WithDropOnFull() Option {
	return func(a *Async) { a.dropOnFull = true }
}

// WithDeliveryTimeout bounds a single delivery to the inner notifier,
// retries included. Default: 30s.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(a *Async) { a.deliveryTimeout = d }
}

// Async hands notifications to a background goroutine so the caller, which
// holds the incident buffer lock, never waits on a slow sink.
type Async struct {
	inner           notify.Notifier
	ch              chan notify.Notification
	done            chan struct{}
	errFunc         func(notify.Notification, error)
	bufSize         int
	dropOnFull      bool
	deliveryTimeout time.Duration
	dropped         atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// New wraps inner and starts the delivery goroutine.
func New(inner notify.Notifier, opts ...Option) *Async {
	a := &Async{
		inner:           inner,
		bufSize:         defaultBufferSize,
		deliveryTimeout: defaultDeliveryTimeout,
		errFunc: func(n notify.Notification, err error) {
			slog.Warn("notification delivery failed", "component", "notify",
				"incident", n.Target.IncidentID, "kind", n.Kind, "error", err)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan notify.Notification, a.bufSize)
	a.done = make(chan struct{})
	go a.deliver()
	return a
}

// Notify enqueues n. While the buffer is full it blocks until there is room
// or ctx is done, unless WithDropOnFull is set.
func (a *Async) Notify(ctx context.Context, n notify.Notification) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}

	if a.dropOnFull {
		select {
		case a.ch <- n:
		default:
			a.dropped.Add(1)
			slog.Warn("notification buffer full, dropping", "component", "notify",
				"incident", n.Target.IncidentID, "kind", n.Kind)
		}
		return nil
	}
	select {
	case a.ch <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped returns how many notifications were discarded on a full buffer.
func (a *Async) Dropped() int64 {
	return a.dropped.Load()
}

// Close stops accepting notifications, waits for queued ones to be
// delivered (with a timeout), then closes the inner notifier.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()

	select {
	case <-a.done:
	case <-time.After(defaultDrainTimeout):
		slog.Warn("notification drain timed out", "component", "notify", "undelivered", len(a.ch))
	}
	return a.inner.Close()
}

func (a *Async) deliver() {
	defer close(a.done)
	for n := range a.ch {
		ctx, cancel := context.WithTimeout(context.Background(), a.deliveryTimeout)
		err := a.inner.Notify(ctx, n)
		cancel()
		if err != nil {
			a.errFunc(n, err)
		}
	}
}
