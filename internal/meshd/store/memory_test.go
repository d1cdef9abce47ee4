package store

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Backends holding connections implement io.Closer so the app can release
// them on shutdown.
var (
	_ io.Closer = (*RedisStore)(nil)
	_ io.Closer = (*SQLiteStore)(nil)
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	key := MeshKey{Level: 10, Row: 500, Column: 500, Skirted: true}

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte{1, 2, 3, 4}
	require.NoError(t, s.Set(ctx, key, payload))

	got, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestMemoryStoreDistinguishesKeys(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	skirted := MeshKey{Level: 3, Row: 1, Column: 2, Skirted: true}
	bare := MeshKey{Level: 3, Row: 1, Column: 2, Skirted: false}

	require.NoError(t, s.Set(ctx, skirted, []byte("skirted")))

	_, ok, err := s.Get(ctx, bare)
	require.NoError(t, err)
	assert.False(t, ok)
}
