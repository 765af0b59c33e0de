package pipeline

import "errors"

var (
	// ErrStreamIdleExceeded is logged when the source kept returning nothing
	// more often than the configured error budget allows.
	ErrStreamIdleExceeded = errors.New("stream idle limit exceeded")

	// ErrIO wraps read failures from the line source.
	ErrIO = errors.New("stream read failure")

	// ErrRunning is returned by Run when the pipeline is already running.
	ErrRunning = errors.New("pipeline already running")
)
