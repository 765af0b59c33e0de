// Package pipeline drives the watch loop: it reads lines from a connector,
// groups parsed records into incidents, and records and announces each one.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/crimson-sun/strictwatch/internal/connector"
	"github.com/crimson-sun/strictwatch/internal/engine"
	"github.com/crimson-sun/strictwatch/internal/engine/compactor"
	"github.com/crimson-sun/strictwatch/internal/engine/parser"
	"github.com/crimson-sun/strictwatch/internal/model"
	"github.com/crimson-sun/strictwatch/internal/notify"
	"github.com/crimson-sun/strictwatch/internal/store"
)

const (
	DefaultNotificationDelay = 2000 * time.Millisecond
	DefaultLogDelay          = 1000 * time.Millisecond
	DefaultErrorSleep        = 1000 * time.Millisecond
	DefaultMaxErrorCount     = 3
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNotificationDelay sets how long after the first buffered record the
// buffer is inspected. Default: 2s.
func WithNotificationDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.notificationDelay = d }
}

// WithLogDelay sets the quiet period after which a trailing group is
// considered complete. Default: 1s.
func WithLogDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.logDelay = d }
}

// WithErrorSleep sets the pause after an empty read. Default: 1s.
func WithErrorSleep(d time.Duration) Option {
	return func(p *Pipeline) { p.errorSleep = d }
}

// WithMaxErrorCount sets how many empty reads are tolerated over the life
// of a run. Default: 3.
func WithMaxErrorCount(n int) Option {
	return func(p *Pipeline) { p.maxErrorCount = n }
}

// WithHeadsUp marks notifications for prominent display.
func WithHeadsUp(on bool) Option {
	return func(p *Pipeline) { p.headsUp = on }
}

// WithCompactor sets how incidents are trimmed for notification payloads.
// Default: compactor.Standard.
func WithCompactor(c *compactor.Compactor) Option {
	return func(p *Pipeline) { p.compactor = c }
}

// WithClock sets the clock used to stamp records and judge quiet periods.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// Pipeline connects a connector, engine, store and notifier.
type Pipeline struct {
	connector connector.Connector
	cfg       connector.ConnectorConfig
	engine    *engine.Engine
	store     *store.Store
	notifier  notify.Notifier
	compactor *compactor.Compactor

	notificationDelay time.Duration
	logDelay          time.Duration
	errorSleep        time.Duration
	maxErrorCount     int
	headsUp           bool
	now               func() time.Time

	// newBuffer is replaced in tests to control timers.
	newBuffer func(emit func([]model.LogRecord)) *incidentBuffer

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Pipeline from the given components.
func New(conn connector.Connector, cfg connector.ConnectorConfig, eng *engine.Engine, st *store.Store, n notify.Notifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		connector:         conn,
		cfg:               cfg,
		engine:            eng,
		store:             st,
		notifier:          n,
		compactor:         compactor.New(compactor.Standard),
		notificationDelay: DefaultNotificationDelay,
		logDelay:          DefaultLogDelay,
		errorSleep:        DefaultErrorSleep,
		maxErrorCount:     DefaultMaxErrorCount,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.newBuffer = func(emit func([]model.LogRecord)) *incidentBuffer {
		b := newIncidentBuffer(p.notificationDelay, p.logDelay, emit)
		b.now = p.now
		return b
	}
	return p
}

// Run opens the source and processes lines until the context is cancelled,
// Stop is called, the source stays empty beyond the error budget, or a read
// fails. Cancellation and an exhausted budget return nil.
func (p *Pipeline) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return ErrRunning
	}
	p.cancel = cancel
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
	}()

	reader, err := p.connector.Open(ctx, p.cfg)
	if err != nil {
		return fmt.Errorf("pipeline open: %w", err)
	}

	var closeOnce sync.Once
	closeReader := func() {
		closeOnce.Do(func() {
			if err := reader.Close(); err != nil {
				slog.Warn("closing line source", "component", "pipeline", "error", err)
			}
		})
	}
	defer closeReader()

	buf := p.newBuffer(func(records []model.LogRecord) { p.report(ctx, records) })
	defer buf.stop()

	// Closing the reader is the only way to unblock a pending ReadLine.
	go func() {
		<-ctx.Done()
		closeReader()
	}()

	slog.Info("watching log stream", "component", "pipeline", "provider", p.cfg.Provider)

	lp := parser.Parser{Now: p.now}
	errCount := 0
	for {
		line, err := reader.ReadLine()
		if ctx.Err() != nil {
			return nil
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		if err == nil && line != "" {
			if rec, ok := lp.Parse(line); ok {
				buf.add(rec)
			}
			continue
		}

		if !sleepCtx(ctx, p.errorSleep) {
			return nil
		}
		errCount++
		if errCount > p.maxErrorCount {
			slog.Error("stopping watch", "component", "pipeline",
				"error", ErrStreamIdleExceeded, "empty_reads", errCount)
			return nil
		}
	}
}

// Stop cancels a running Run. It is a no-op when nothing is running.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// report handles one finalized group: classify, persist, notify. A persist
// failure is logged and the notification still goes out.
func (p *Pipeline) report(ctx context.Context, records []model.LogRecord) {
	inc, ok := p.engine.Process(records)
	if !ok {
		slog.Debug("incident suppressed", "component", "pipeline", "key", inc.Key)
		return
	}

	if err := p.store.Append(ctx, inc); err != nil {
		slog.Error("persisting incident", "component", "pipeline", "id", inc.ID, "error", err)
	}

	n, err := notify.Build(inc, p.compactor, p.headsUp)
	if err != nil {
		slog.Error("building notification", "component", "pipeline", "id", inc.ID, "error", err)
		return
	}
	if err := p.notifier.Notify(ctx, n); err != nil {
		slog.Warn("notification failed", "component", "pipeline", "id", inc.ID, "error", err)
	}
	slog.Info("incident reported", "component", "pipeline", "id", inc.ID, "kind", string(inc.Kind))
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
