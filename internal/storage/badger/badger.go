package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/crimson-sun/strictwatch/internal/storage"
)

// Config selects where the database lives.
type Config struct {
	Path     string // database directory; ignored when InMemory is set
	InMemory bool
}

// record is the single persisted row type: one named blob.
type record struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// KV implements storage.KV on a badgerhold store.
type KV struct {
	store *badgerhold.Store
}

// Open opens (creating if needed) the Badger database.
func Open(cfg Config) (*KV, error) {
	options := badgerhold.DefaultOptions
	options.Logger = nil // badger's own logger is noisy; errors surface through returns

	if cfg.InMemory {
		options.InMemory = true
		options.Dir = ""
		options.ValueDir = ""
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("badger: no database path configured")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("badger: create database directory: %w", err)
		}
		options.Dir = cfg.Path
		options.ValueDir = cfg.Path
	}

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("badger: open %s: %w", cfg.Path, err)
	}
	slog.Debug("badger database opened", "component", "storage", "path", cfg.Path, "in_memory", cfg.InMemory)
	return &KV{store: store}, nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Get returns the blob stored under key, or storage.ErrNotFound.
func (k *KV) Get(_ context.Context, key string) ([]byte, error) {
	var rec record
	err := k.store.Get(normalizeKey(key), &rec)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badger: get %q: %w", key, err)
	}
	return rec.Value, nil
}

// Put replaces the blob stored under key in a single write.
func (k *KV) Put(_ context.Context, key string, value []byte) error {
	nk := normalizeKey(key)
	rec := record{Key: nk, Value: value, UpdatedAt: time.Now()}
	if err := k.store.Upsert(nk, &rec); err != nil {
		return fmt.Errorf("badger: put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (k *KV) Delete(_ context.Context, key string) error {
	err := k.store.Delete(normalizeKey(key), &record{})
	if err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("badger: delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (k *KV) Close() error {
	if k.store != nil {
		return k.store.Close()
	}
	return nil
}
