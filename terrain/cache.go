package terrain

import (
	"fmt"
	"sync"

	"github.com/mantle3d/mantle/geo"
)

// GeometryCache memoizes generated patches for the lifetime of the process.
// Tile-local patch geometry, expressed in the origin's tangent frame,
// depends only on the level and row: both projections are
// longitude-symmetric, so every column at a (level, row) shares one shape.
// Simple patches are identical everywhere and cached under a single
// level-independent key. The cache never evicts; callers share the returned
// mode and must not mutate its buffers.
type GeometryCache struct {
	mu    sync.Mutex
	gen   *PatchGenerator
	modes map[string]*GeometryMode
}

func NewGeometryCache(gen *PatchGenerator) *GeometryCache {
	return &GeometryCache{
		gen:   gen,
		modes: make(map[string]*GeometryMode),
	}
}

// Get returns the patch shape for the cache key, synthesizing it on first
// request. Non-simple patches are generated with a skirt.
func (c *GeometryCache) Get(level, row int, simple bool) (*GeometryMode, error) {
	key := cacheKey(level, row, simple)

	c.mu.Lock()
	defer c.mu.Unlock()
	if mode, ok := c.modes[key]; ok {
		return mode, nil
	}

	var mode *GeometryMode
	if simple {
		mode = c.gen.SimplePatch()
	} else {
		// column 0 stands in for every column at this (level, row)
		var err error
		mode, err = c.gen.Generate(geo.NewTileKey(row, 0, level), true)
		if err != nil {
			return nil, err
		}
	}
	c.modes[key] = mode
	return mode, nil
}

// Generator is the patch generator backing the cache, for shapes the cache
// does not cover.
func (c *GeometryCache) Generator() *PatchGenerator {
	return c.gen
}

// Len is the number of cached shapes.
func (c *GeometryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.modes)
}

func cacheKey(level, row int, simple bool) string {
	if simple {
		return "simple"
	}
	return fmt.Sprintf("%d_%d", level, row)
}
