package memory

import (
	"context"
	"sync"

	"github.com/crimson-sun/strictwatch/internal/storage"
)

// KV is a process-local storage.KV, used for ephemeral watchers and tests.
type KV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// New returns an empty KV.
func New() *KV {
	return &KV{data: make(map[string][]byte)}
}

func (k *KV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (k *KV) Put(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = append([]byte(nil), value...)
	return nil
}

func (k *KV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, key)
	return nil
}

func (k *KV) Close() error { return nil }
