package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/crimson-sun/strictwatch/internal/notify"
)

const defaultBackups = 9

// Option configures a file Notifier.
type Option func(*Notifier)

// WithMaxSize sets the file size (bytes) at which rotation triggers.
// 0 (default) disables rotation.
func WithMaxSize(bytes int64) Option {
	return func(n *Notifier) { n.maxSize = bytes }
}

// WithBackups sets how many rotated files are kept. Default: 9.
func WithBackups(count int) Option {
	return func(n *Notifier) { n.backups = count }
}

// Notifier appends notifications as NDJSON to a file, with optional
// size-based rotation. Every line is flushed as it is written.
type Notifier struct {
	w       *bufio.Writer
	f       *os.File
	mu      sync.Mutex
	path    string
	maxSize int64 // 0 = no rotation
	written int64
	backups int
}

// New creates a file notifier that writes NDJSON to the given path.
func New(path string, opts ...Option) (*Notifier, error) {
	n := &Notifier{
		path:    path,
		backups: defaultBackups,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.backups < 1 {
		n.backups = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file notifier: %w", err)
	}
	if err := n.openFile(); err != nil {
		return nil, err
	}
	return n, nil
}

// Notify JSON-encodes the notification and appends it as a line.
func (n *Notifier) Notify(_ context.Context, note notify.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("file notifier: marshal: %w", err)
	}
	data = append(data, '\n')

	if n.maxSize > 0 && n.written > 0 && n.written+int64(len(data)) > n.maxSize {
		if err := n.rotate(); err != nil {
			return fmt.Errorf("file notifier: rotate: %w", err)
		}
	}

	written, err := n.w.Write(data)
	n.written += int64(written)
	if err != nil {
		return fmt.Errorf("file notifier: write: %w", err)
	}
	if err := n.w.Flush(); err != nil {
		return fmt.Errorf("file notifier: flush: %w", err)
	}
	return nil
}

// Close flushes the buffer and closes the file.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.w.Flush(); err != nil {
		n.f.Close()
		return fmt.Errorf("file notifier: flush: %w", err)
	}
	return n.f.Close()
}

func (n *Notifier) openFile() error {
	f, err := os.OpenFile(n.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("file notifier: open %s: %w", n.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("file notifier: stat %s: %w", n.path, err)
	}
	n.f = f
	n.w = bufio.NewWriter(f)
	n.written = info.Size()
	return nil
}

// rotate closes the current file, shifts {path}.N to {path}.N+1 dropping
// the oldest, renames the current file to {path}.1 and reopens.
func (n *Notifier) rotate() error {
	if err := n.w.Flush(); err != nil {
		return err
	}
	if err := n.f.Close(); err != nil {
		return err
	}

	os.Remove(fmt.Sprintf("%s.%d", n.path, n.backups))
	for i := n.backups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", n.path, i), fmt.Sprintf("%s.%d", n.path, i+1))
	}
	if err := os.Rename(n.path, n.path+".1"); err != nil {
		return err
	}

	n.written = 0
	return n.openFile()
}
