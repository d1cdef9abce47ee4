package mantle

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mantle3d/mantle/geo"
	"github.com/mantle3d/mantle/terrain"
)

// TileUpdater tracks the visible tile set: it requests missing geometry
// from the background tiler, drains finished results each frame, and hands
// out per-tile transformations under the current morph blend. It runs on
// the render thread; only the tiler workers are concurrent.
type TileUpdater struct {
	view *MapView

	visible []geo.TileKey
	ready   map[geo.TileKey]*terrain.GeometryMode
	pending map[geo.TileKey]bool
}

func newTileUpdater(view *MapView) *TileUpdater {
	return &TileUpdater{
		view:    view,
		ready:   make(map[geo.TileKey]*terrain.GeometryMode),
		pending: make(map[geo.TileKey]bool),
	}
}

// SetViewBox declares what is on screen. Newly visible tiles are queued for
// generation; tiles no longer visible are evicted.
func (t *TileUpdater) SetViewBox(box geo.GeoBox, level int) {
	t.visible = t.view.scheme.TilesInBox(box, level)

	wanted := make(map[geo.TileKey]bool, len(t.visible))
	for _, key := range t.visible {
		wanted[key] = true
		if t.ready[key] != nil || t.pending[key] {
			continue
		}
		t.pending[key] = true
		t.view.pool.Request(key, true)
	}

	for key := range t.ready {
		if !wanted[key] {
			delete(t.ready, key)
		}
	}
}

// Update drains finished tiler results without blocking.
func (t *TileUpdater) Update(time.Duration) {
	for {
		select {
		case res, ok := <-t.view.pool.Results():
			if !ok {
				return
			}
			delete(t.pending, res.Key)
			if res.Err != nil {
				t.view.Logger().Warnf("tile %v generation failed: %v", res.Key, res.Err)
				continue
			}
			t.ready[res.Key] = res.Mode
		default:
			return
		}
	}
}

// Visible is the current visible tile set, row-major.
func (t *TileUpdater) Visible() []geo.TileKey {
	return t.visible
}

// Geometry returns a tile's mesh once the tiler has delivered it.
func (t *TileUpdater) Geometry(key geo.TileKey) (*terrain.GeometryMode, bool) {
	mode, ok := t.ready[key]
	return mode, ok
}

// Transformation places a tile under the current morph blend.
func (t *TileUpdater) Transformation(key geo.TileKey) (mgl64.Vec3, *mgl64.Mat4) {
	tt := terrain.NewTileTransformation(t.view.scheme, t.view.sphere, t.view.scheme.Projection(), key)
	return tt.Interpolate(t.view.morph.T())
}
