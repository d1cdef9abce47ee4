// Package store caches encoded tile meshes behind a common interface with
// memory, redis and sqlite backends.
package store

import "context"

// MeshKey identifies one encoded mesh.
type MeshKey struct {
	Level   int
	Row     int
	Column  int
	Skirted bool
}

// MeshStore is the cache contract. Get reports a miss with (nil, false, nil).
type MeshStore interface {
	Get(ctx context.Context, key MeshKey) ([]byte, bool, error)
	Set(ctx context.Context, key MeshKey, payload []byte) error
}
