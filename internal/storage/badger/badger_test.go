package badger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/strictwatch/internal/storage"
)

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := Open(Config{Path: filepath.Join(t.TempDir(), "db")})
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.Get(ctx, "strictmode/reports")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, kv.Put(ctx, "strictmode/reports", []byte("v1")))
	require.NoError(t, kv.Put(ctx, "strictmode/reports", []byte("v2")))

	got, err := kv.Get(ctx, "strictmode/reports")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	// Keys are case-insensitive.
	got, err = kv.Get(ctx, "  StrictMode/Reports ")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, kv.Delete(ctx, "strictmode/reports"))
	_, err = kv.Get(ctx, "strictmode/reports")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, kv.Delete(ctx, "strictmode/reports"), "deleting a missing key")
}

func TestKVPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db")

	kv, err := Open(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "k", []byte("durable")))
	require.NoError(t, kv.Close())

	kv, err = Open(Config{Path: path})
	require.NoError(t, err)
	defer kv.Close()

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)
}

func TestKVInMemory(t *testing.T) {
	ctx := context.Background()
	kv, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Put(ctx, "k", []byte("v")))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

var _ storage.KV = (*KV)(nil)
