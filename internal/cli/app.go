package cli

import (
	"errors"
	"fmt"

	"github.com/crimson-sun/strictwatch/internal/config"
	"github.com/crimson-sun/strictwatch/internal/engine"
	"github.com/crimson-sun/strictwatch/internal/engine/classifier"
	"github.com/crimson-sun/strictwatch/internal/engine/taxonomy"
	"github.com/crimson-sun/strictwatch/internal/notify"
	"github.com/crimson-sun/strictwatch/internal/notify/async"
	"github.com/crimson-sun/strictwatch/internal/notify/desktop"
	"github.com/crimson-sun/strictwatch/internal/notify/file"
	"github.com/crimson-sun/strictwatch/internal/notify/multi"
	"github.com/crimson-sun/strictwatch/internal/notify/stdout"
	"github.com/crimson-sun/strictwatch/internal/notify/webhook"
	"github.com/crimson-sun/strictwatch/internal/prefs"
	"github.com/crimson-sun/strictwatch/internal/review"
	"github.com/crimson-sun/strictwatch/internal/storage/badger"
	"github.com/crimson-sun/strictwatch/internal/store"
)

// openStore opens the configured report history. The returned func closes
// the backing database.
func openStore(c config.StoreConfig) (*store.Store, func() error, error) {
	kv, err := badger.Open(badger.Config{Path: c.Path, InMemory: c.InMemory})
	if err != nil {
		return nil, nil, fmt.Errorf("opening report store (is another watch running?): %w", err)
	}
	return store.NewWithMax(kv, c.MaxReports), kv.Close, nil
}

func newEngine() (*engine.Engine, error) {
	tax, err := taxonomy.New(taxonomy.Default())
	if err != nil {
		return nil, err
	}
	return engine.New(classifier.New(tax)), nil
}

// buildNotifier assembles the configured sinks.
func buildNotifier(c config.NotifyConfig) (notify.Notifier, error) {
	var sinks []multi.Sink
	fail := func(err error) (notify.Notifier, error) {
		errs := []error{err}
		for _, s := range sinks {
			errs = append(errs, s.Notifier.Close())
		}
		return nil, errors.Join(errs...)
	}

	for _, name := range c.Sinks {
		switch name {
		case "stdout":
			sinks = append(sinks, multi.Sink{Name: name, Notifier: stdout.New(c.Pretty)})
		case "file":
			f, err := file.New(c.FilePath, file.WithMaxSize(c.FileMaxSize))
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, multi.Sink{Name: name, Notifier: f})
		case "webhook":
			sinks = append(sinks, multi.Sink{Name: name, Notifier: webhook.New(c.WebhookURL,
				webhook.WithHeaders(c.WebhookHeaders),
				webhook.WithRateLimit(c.WebhookInterval(), c.WebhookBurst),
			)})
		case "desktop":
			d, err := desktop.New()
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, multi.Sink{Name: name, Notifier: d})
		default:
			return fail(fmt.Errorf("unknown notification sink %q", name))
		}
	}

	var n notify.Notifier
	if len(sinks) == 1 {
		n = sinks[0].Notifier
	} else {
		n = multi.New(sinks...)
	}
	if c.Asynchronous() {
		n = async.New(n)
	}
	return n, nil
}

func openReview(c config.ReviewConfig) (*review.Toggle, error) {
	return review.New(prefs.Open(c.PrefsPath))
}
