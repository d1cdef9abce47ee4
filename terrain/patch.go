package terrain

import (
	"errors"
	"fmt"

	"github.com/mantle3d/mantle/elevation"
	"github.com/mantle3d/mantle/geo"
)

var (
	ErrInvalidTileKey   = errors.New("terrain: invalid tile key")
	ErrDegenerateGeoBox = errors.New("terrain: degenerate tile geo box")
)

// PatchGenerator synthesizes tile patches: for every grid cell of a tile it
// computes the geographic position via the tiling scheme and projects it
// through the sphere and web-Mercator projections simultaneously. Output is
// bit-deterministic: identical (scheme, level, row, column, subdivision)
// always produce identical buffers, which is what makes caching by shape
// sound.
type PatchGenerator struct {
	scheme      *geo.TilingScheme
	sphere      geo.Projection
	mercator    geo.Projection
	subdivision int
	sampler     elevation.Sampler
}

// NewPatchGenerator creates a generator producing (2^subdivision)^2 cells
// per patch. sampler supplies terrain heights for draping and may be nil for
// sea-level geometry.
func NewPatchGenerator(scheme *geo.TilingScheme, subdivision int, sampler elevation.Sampler) *PatchGenerator {
	if subdivision < 0 || subdivision > 10 {
		panic(fmt.Sprintf("terrain: subdivision %d out of range", subdivision))
	}
	return &PatchGenerator{
		scheme:      scheme,
		sphere:      geo.NewSphereProjection(),
		mercator:    scheme.Projection(),
		subdivision: subdivision,
		sampler:     sampler,
	}
}

// Subdivision is the patch subdivision exponent.
func (g *PatchGenerator) Subdivision() int {
	return g.subdivision
}

// Generate builds the patch for one tile. Vertex positions are tile-local,
// relative to the projections of the tile's south-west origin; sphere
// positions are additionally expressed in the origin's east/north/up frame,
// which makes them independent of the tile column and lets the tile
// transformation's rotation place them back in world space. When skirted,
// the grid grows by one ring of cells whose vertices reuse the edge
// footprint but drop by SkirtHeight(level), hiding seams between
// neighboring tiles at different levels.
func (g *PatchGenerator) Generate(key geo.TileKey, skirted bool) (*GeometryMode, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidTileKey, key)
	}
	box := g.scheme.GeoBox(key)
	if box.Degenerate() {
		return nil, fmt.Errorf("%w: %+v", ErrDegenerateGeoBox, box)
	}

	cells := 1 << uint(g.subdivision)
	lo, hi := 0, cells
	if skirted {
		lo, hi = -1, cells+1
	}
	side := hi - lo + 1
	yDown := g.scheme.YDown()

	skirt := 0.0
	if skirted {
		skirt = SkirtHeight(key.Level)
	}

	origin := box.SouthWest()
	sphereOrigin := g.sphere.ProjectPoint(origin)
	mercOrigin := g.mercator.ProjectPoint(origin)
	// world to local: the inverse of the orthonormal tangent frame
	toLocal := tangentFrame(origin).Transpose()

	mode := &GeometryMode{
		Level:             key.Level,
		Skirted:           skirted,
		GridCells:         cells,
		GridVertices:      side,
		Positions:         make([]float32, 0, side*side*3),
		MercatorPositions: make([]float32, 0, side*side*3),
		UVs:               make([]float32, 0, side*side*2),
		WebMercatorY:      make([]float32, 0, side*side),
		SkirtOffsets:      make([]float32, 0, side*side),
	}

	for iy := lo; iy <= hi; iy++ {
		for ix := lo; ix <= hi; ix++ {
			// u west to east, v south to north
			u := float64(ix) / float64(cells)
			v := float64(iy) / float64(cells)
			cu, cv := clamp01(u), clamp01(v)
			drop := 0.0
			if u != cu || v != cv {
				drop = skirt
			}

			gc := box.Lerp(cu, cv)
			if g.sampler != nil {
				gc = gc.WithAltitude(g.sampler.SampleHeight(gc))
			}

			sp := g.sphere.ProjectPoint(gc)
			mp := g.mercator.ProjectPoint(gc)
			if drop != 0 {
				sp = sp.Sub(g.sphere.SurfaceNormal(gc).Mul(drop))
				mp = mp.Sub(g.mercator.SurfaceNormal(gc).Mul(drop))
			}
			sp = toLocal.Mul4x1(sp.Sub(sphereOrigin).Vec4(0)).Vec3()
			mp = mp.Sub(mercOrigin)

			uvY := cv
			if yDown {
				uvY = 1 - cv
			}

			mode.Positions = append(mode.Positions,
				float32(sp.X()), float32(sp.Y()), float32(sp.Z()))
			mode.MercatorPositions = append(mode.MercatorPositions,
				float32(mp.X()), float32(mp.Y()), float32(mp.Z()))
			mode.UVs = append(mode.UVs, float32(cu), float32(uvY))
			mode.WebMercatorY = append(mode.WebMercatorY,
				float32(geo.NormalizedMercatorY(gc.Latitude, yDown)))
			mode.SkirtOffsets = append(mode.SkirtOffsets, float32(drop))
		}
	}

	g.buildBucketIndices(mode, lo)
	return mode, nil
}

// SimplePatch is the unskirted unit patch used for maximal-detail tiles:
// at the deepest level the curvature within one tile is negligible, so a
// flat grid on the Mercator-local unit square serves every tile position.
// The texture coordinate carries the blend attributes; the renderer scales
// by the tile extent through the tile transformation.
func (g *PatchGenerator) SimplePatch() *GeometryMode {
	cells := 1 << uint(g.subdivision)
	side := cells + 1
	yDown := g.scheme.YDown()

	mode := &GeometryMode{
		Skirted:           false,
		Simple:            true,
		GridCells:         cells,
		GridVertices:      side,
		Positions:         make([]float32, 0, side*side*3),
		MercatorPositions: make([]float32, 0, side*side*3),
		UVs:               make([]float32, 0, side*side*2),
		WebMercatorY:      make([]float32, 0, side*side),
		SkirtOffsets:      make([]float32, side*side),
	}

	for iy := 0; iy <= cells; iy++ {
		for ix := 0; ix <= cells; ix++ {
			u := float32(ix) / float32(cells)
			v := float32(iy) / float32(cells)
			uvY := v
			if yDown {
				uvY = 1 - v
			}
			mode.Positions = append(mode.Positions, u, v, 0)
			mode.MercatorPositions = append(mode.MercatorPositions, u, v, 0)
			mode.UVs = append(mode.UVs, u, uvY)
			mode.WebMercatorY = append(mode.WebMercatorY, uvY)
		}
	}

	g.buildBucketIndices(mode, 0)
	return mode
}

// buildBucketIndices lays the index buffer out bucket by bucket: each
// interior cell's two triangles land in its own Morton bucket, skirt cells
// append to the bucket they clamp to. Bucket ranges are contiguous and
// together cover the whole index buffer.
func (g *PatchGenerator) buildBucketIndices(mode *GeometryMode, lo int) {
	cells := mode.GridCells
	side := mode.GridVertices
	cellsPerAxis := side - 1

	groups := make([][][2]int, BucketCount(cells))
	for cy := lo; cy < lo+cellsPerAxis; cy++ {
		for cx := lo; cx < lo+cellsPerAxis; cx++ {
			b := BucketIndex(cx, cy, cells)
			groups[b] = append(groups[b], [2]int{cx, cy})
		}
	}

	vid := func(ix, iy int) uint32 {
		return uint32((iy-lo)*side + (ix - lo))
	}

	mode.Indices = make([]uint32, 0, cellsPerAxis*cellsPerAxis*6)
	mode.Buckets = make([]BucketRange, len(groups))
	for b, cellsInBucket := range groups {
		start := uint32(len(mode.Indices))
		for _, c := range cellsInBucket {
			v00 := vid(c[0], c[1])
			v10 := vid(c[0]+1, c[1])
			v01 := vid(c[0], c[1]+1)
			v11 := vid(c[0]+1, c[1]+1)
			mode.Indices = append(mode.Indices,
				v00, v10, v11,
				v00, v11, v01)
		}
		mode.Buckets[b] = BucketRange{Start: start, Count: uint32(len(mode.Indices)) - start}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
