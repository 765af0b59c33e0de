package strictwatch

import (
	"io"
	"time"

	"github.com/crimson-sun/strictwatch/internal/pipeline"
)

type options struct {
	provider string
	serial   string
	adb      string
	path     string
	source   io.Reader

	storePath  string
	maxReports int

	notifyFunc func(Notification)
	headsUp    bool
	verbosity  string

	notificationDelay time.Duration
	logDelay          time.Duration
	errorSleep        time.Duration
	maxErrorCount     int
}

// Option configures a Watcher.
type Option func(*options)

// WithLogcat follows `adb logcat` on the device with the given serial
// (empty for the only attached device). This is the default source.
func WithLogcat(serial string) Option {
	return func(o *options) {
		o.provider = "logcat"
		o.serial = serial
	}
}

// WithADB sets the adb executable. Default: "adb" on PATH.
func WithADB(path string) Option {
	return func(o *options) { o.adb = path }
}

// WithFile replays a saved logcat capture.
func WithFile(path string) Option {
	return func(o *options) {
		o.provider = "file"
		o.path = path
	}
}

// WithSource reads lines from r. If r is an io.Closer it is closed when
// the watcher stops.
func WithSource(r io.Reader) Option {
	return func(o *options) {
		o.provider = "stdin"
		o.source = r
	}
}

// WithStorePath persists the incident history in a Badger database at dir.
// Without it the history is kept in memory.
func WithStorePath(dir string) Option {
	return func(o *options) { o.storePath = dir }
}

// WithMaxReports sets the history cap. Default: 50.
func WithMaxReports(n int) Option {
	return func(o *options) { o.maxReports = n }
}

// WithNotifyFunc sets the callback invoked once per reported incident. It
// runs on the batching timer and should not block.
func WithNotifyFunc(f func(Notification)) Option {
	return func(o *options) { o.notifyFunc = f }
}

// WithHeadsUp marks notifications for prominent display.
func WithHeadsUp(on bool) Option {
	return func(o *options) { o.headsUp = on }
}

// WithVerbosity sets how much stack a notification payload carries:
// "minimal", "standard" or "full". Default: "standard".
func WithVerbosity(v string) Option {
	return func(o *options) { o.verbosity = v }
}

// WithTimings overrides the batching and retry timings. Zero values keep
// the defaults (2s, 1s, 1s).
func WithTimings(notificationDelay, logDelay, errorSleep time.Duration) Option {
	return func(o *options) {
		if notificationDelay > 0 {
			o.notificationDelay = notificationDelay
		}
		if logDelay > 0 {
			o.logDelay = logDelay
		}
		if errorSleep > 0 {
			o.errorSleep = errorSleep
		}
	}
}

// WithMaxErrorCount sets how many empty reads end a run. Default: 3.
func WithMaxErrorCount(n int) Option {
	return func(o *options) { o.maxErrorCount = n }
}

func defaultOptions() options {
	return options{
		provider:          "logcat",
		adb:               "adb",
		verbosity:         "standard",
		notificationDelay: pipeline.DefaultNotificationDelay,
		logDelay:          pipeline.DefaultLogDelay,
		errorSleep:        pipeline.DefaultErrorSleep,
		maxErrorCount:     pipeline.DefaultMaxErrorCount,
	}
}
