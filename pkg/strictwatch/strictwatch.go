package strictwatch

import (
	"context"
	"fmt"
	"io"

	"github.com/crimson-sun/strictwatch/internal/connector"
	"github.com/crimson-sun/strictwatch/internal/connector/file"
	"github.com/crimson-sun/strictwatch/internal/connector/logcat"
	"github.com/crimson-sun/strictwatch/internal/connector/stdin"
	"github.com/crimson-sun/strictwatch/internal/engine"
	"github.com/crimson-sun/strictwatch/internal/engine/compactor"
	"github.com/crimson-sun/strictwatch/internal/engine/parser"
	"github.com/crimson-sun/strictwatch/internal/notify"
	"github.com/crimson-sun/strictwatch/internal/pipeline"
	"github.com/crimson-sun/strictwatch/internal/storage"
	"github.com/crimson-sun/strictwatch/internal/storage/badger"
	"github.com/crimson-sun/strictwatch/internal/storage/memory"
	"github.com/crimson-sun/strictwatch/internal/store"
)

// Watcher follows one log source and reports StrictMode violations.
// A Watcher is safe for concurrent use.
type Watcher struct {
	pipeline *pipeline.Pipeline
	store    *store.Store
	kv       storage.KV
}

// New creates a Watcher. The source is not opened until Run.
func New(opts ...Option) (*Watcher, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	conn, cfg, err := newConnector(o)
	if err != nil {
		return nil, err
	}

	cls, err := defaultClassifier()
	if err != nil {
		return nil, fmt.Errorf("strictwatch: loading taxonomy: %w", err)
	}

	var kv storage.KV = memory.New()
	if o.storePath != "" {
		bkv, err := badger.Open(badger.Config{Path: o.storePath})
		if err != nil {
			return nil, fmt.Errorf("strictwatch: opening store: %w", err)
		}
		kv = bkv
	}

	st := store.New(kv)
	if o.maxReports > 0 {
		st = store.NewWithMax(kv, o.maxReports)
	}

	w := &Watcher{store: st, kv: kv}
	w.pipeline = pipeline.New(conn, cfg, engine.New(cls), st, w.notifier(o.notifyFunc),
		pipeline.WithNotificationDelay(o.notificationDelay),
		pipeline.WithLogDelay(o.logDelay),
		pipeline.WithErrorSleep(o.errorSleep),
		pipeline.WithMaxErrorCount(o.maxErrorCount),
		pipeline.WithHeadsUp(o.headsUp),
		pipeline.WithCompactor(compactor.New(compactor.ParseVerbosity(o.verbosity))),
	)
	return w, nil
}

func newConnector(o options) (connector.Connector, connector.ConnectorConfig, error) {
	cfg := connector.ConnectorConfig{Provider: o.provider, Command: o.adb, Serial: o.serial, Path: o.path}
	switch o.provider {
	case "logcat":
		return &logcat.Connector{}, cfg, nil
	case "file":
		return &file.Connector{}, cfg, nil
	case "stdin":
		if o.source == nil {
			return nil, cfg, fmt.Errorf("strictwatch: WithSource requires a reader")
		}
		rc, ok := o.source.(io.ReadCloser)
		if !ok {
			rc = io.NopCloser(o.source)
		}
		return &stdin.Connector{Input: rc}, cfg, nil
	default:
		return nil, cfg, fmt.Errorf("strictwatch: unknown source %q", o.provider)
	}
}

func (w *Watcher) notifier(f func(Notification)) notify.Notifier {
	if f == nil {
		return notify.Func(func(context.Context, notify.Notification) error { return nil })
	}
	return notify.Func(func(ctx context.Context, n notify.Notification) error {
		inc, ok := w.store.Get(ctx, n.Target.IncidentID)
		if !ok {
			// not persisted; fall back to the compacted copy in the payload
			decoded, err := notify.DecodeTarget(n.Target)
			if err != nil {
				return err
			}
			inc = decoded
		}
		f(Notification{
			Title:    n.Title,
			Body:     n.Body,
			HeadsUp:  n.HeadsUp,
			Payload:  n.Target.Payload,
			Incident: incidentFromModel(inc),
		})
		return nil
	})
}

// Run reads the source until ctx is done, Stop is called, or the source
// stays empty past the retry budget. It returns nil in all three cases.
func (w *Watcher) Run(ctx context.Context) error {
	return w.pipeline.Run(ctx)
}

// Stop ends a running Run. Lines still waiting for the batching timer are
// dropped.
func (w *Watcher) Stop() {
	w.pipeline.Stop()
}

// Incidents returns the stored history, newest first.
func (w *Watcher) Incidents(ctx context.Context) []Incident {
	all := w.store.GetAll(ctx)
	out := make([]Incident, len(all))
	for i, inc := range all {
		out[i] = incidentFromModel(inc)
	}
	return out
}

// Clear empties the stored history.
func (w *Watcher) Clear(ctx context.Context) error {
	return w.store.Clear(ctx)
}

// Close stops the watcher and releases the store.
func (w *Watcher) Close() error {
	w.pipeline.Stop()
	return w.kv.Close()
}

// Parse converts one logcat line into a Record. It reports false for lines
// that carry no StrictMode or System.err message.
func Parse(line string) (Record, bool) {
	r, ok := parser.Parse(line)
	if !ok {
		return Record{}, false
	}
	return Record{Tag: r.Tag, Message: r.Message, ObservedAt: r.ObservedAt}, true
}

// Classify returns the kind of the first detector matching any of lines.
// It reports false when none match.
func Classify(lines []string) (Kind, bool) {
	cls, err := defaultClassifier()
	if err != nil {
		return "", false
	}
	k, ok := cls.Classify(lines)
	return Kind(k), ok
}
