package connector

import (
	"context"
	"errors"
)

// ErrStreamUnavailable is returned by Open when the underlying log stream
// cannot be started.
var ErrStreamUnavailable = errors.New("log stream unavailable")

// Connector defines the interface all line sources must implement.
type Connector interface {
	// Open starts the source and returns a reader over its lines.
	Open(ctx context.Context, cfg ConnectorConfig) (LineReader, error)
}

// LineReader yields raw lines from an open source.
type LineReader interface {
	// ReadLine blocks until a line is available. It returns io.EOF when the
	// stream currently has nothing to deliver; callers may retry.
	ReadLine() (string, error)

	// Close releases the source, terminating any backing process and
	// unblocking a pending ReadLine. Safe to call more than once.
	Close() error
}

// ConnectorConfig holds provider-specific settings.
type ConnectorConfig struct {
	Provider string
	Command  string // executable for process-backed providers (e.g. adb)
	Serial   string // device serial for adb
	Path     string // input path for the file provider
	Extra    map[string]string
}
