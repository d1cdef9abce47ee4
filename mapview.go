// Package mantle assembles the tile-mesh engine: a MapView wires the tiling
// scheme, patch generation, geometry cache, background tiler and the
// globe-to-flat morph together behind a small module system.
package mantle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mantle3d/mantle/elevation"
	"github.com/mantle3d/mantle/geo"
	"github.com/mantle3d/mantle/terrain"
	"github.com/mantle3d/mantle/tiler"
)

// Module installs one concern into a MapView during Build.
type Module interface {
	Install(view *MapView) error
}

// Updater is stepped once per frame by MapView.Update.
type Updater interface {
	Update(dt time.Duration)
}

// MapView is the engine root. Construct it through MapViewBuilder.
type MapView struct {
	logger    Logger
	scheme    *geo.TilingScheme
	sphere    geo.Projection
	generator *terrain.PatchGenerator
	cache     *terrain.GeometryCache
	pool      *tiler.Pool
	morph     *MorphAnimator
	tiles     *TileUpdater

	updaters []Updater
}

func (v *MapView) TilingScheme() *geo.TilingScheme    { return v.scheme }
func (v *MapView) Generator() *terrain.PatchGenerator { return v.generator }
func (v *MapView) Cache() *terrain.GeometryCache      { return v.cache }
func (v *MapView) Pool() *tiler.Pool                  { return v.pool }
func (v *MapView) Morph() *MorphAnimator              { return v.morph }
func (v *MapView) Tiles() *TileUpdater                { return v.tiles }

// Logger never returns nil.
func (v *MapView) Logger() Logger {
	if v == nil || v.logger == nil {
		return NewNopLogger()
	}
	return v.logger
}

// Update steps every installed updater.
func (v *MapView) Update(dt time.Duration) {
	for _, u := range v.updaters {
		u.Update(dt)
	}
}

// Close stops background work.
func (v *MapView) Close() {
	if v.pool != nil {
		v.pool.Close()
	}
}

// AddUpdater registers a per-frame updater.
func (v *MapView) AddUpdater(u Updater) {
	v.updaters = append(v.updaters, u)
}

// MapViewBuilder collects modules and builds the view. Modules install in
// the order given.
type MapViewBuilder struct {
	modules []Module
}

func NewMapViewBuilder() *MapViewBuilder {
	return &MapViewBuilder{}
}

func (b *MapViewBuilder) UseModule(modules ...Module) *MapViewBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

func (b *MapViewBuilder) Build() (*MapView, error) {
	view := &MapView{
		sphere: geo.NewSphereProjection(),
		morph:  NewMorphAnimator(),
	}
	view.AddUpdater(view.morph)

	for _, module := range b.modules {
		if err := module.Install(view); err != nil {
			return nil, fmt.Errorf("mantle: install %T: %w", module, err)
		}
	}

	if view.generator != nil && view.pool != nil {
		view.tiles = newTileUpdater(view)
		view.AddUpdater(view.tiles)
	}
	return view, nil
}

// TerrainModule installs the tiling scheme, patch generator and geometry
// cache. A nil Elevation sampler produces sea-level geometry.
type TerrainModule struct {
	Subdivision int
	Elevation   elevation.Sampler
}

func (m TerrainModule) Install(view *MapView) error {
	if m.Subdivision <= 0 {
		return errors.New("terrain module needs a positive subdivision")
	}
	view.scheme = geo.NewWebMercatorTilingScheme()
	view.generator = terrain.NewPatchGenerator(view.scheme, m.Subdivision, m.Elevation)
	view.cache = terrain.NewGeometryCache(view.generator)
	view.Logger().Debugf("terrain installed, subdivision=%d", m.Subdivision)
	return nil
}

// TilerModule installs the background generation pool. Requires
// TerrainModule earlier in the module list.
type TilerModule struct {
	Workers int
	Context context.Context
}

func (m TilerModule) Install(view *MapView) error {
	if view.cache == nil {
		return errors.New("tiler module requires a terrain module before it")
	}
	ctx := m.Context
	if ctx == nil {
		ctx = context.Background()
	}
	view.pool = tiler.NewPool(ctx, view.cache, m.Workers)
	view.Logger().Debugf("tiler installed, workers=%d", m.Workers)
	return nil
}
