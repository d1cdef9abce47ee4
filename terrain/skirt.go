package terrain

import (
	"math"

	"github.com/mantle3d/mantle/geo"
)

// MaxSkirtHeight caps the skirt drop in meters.
const MaxSkirtHeight = 1000.0

// levelZeroGeometricError estimates the geometric error of an unsubdivided
// level-0 tile: one 256th of the earth circumference.
var levelZeroGeometricError = 2 * math.Pi * geo.EarthRadius / 256

// SkirtHeight is how far the skirt ring of a tile at the given level drops
// below the surface. The error estimate halves per level, so coarser tiles
// get proportionally larger skirts, capped at MaxSkirtHeight.
func SkirtHeight(level int) float64 {
	h := levelZeroGeometricError / float64(uint64(1)<<uint(level))
	if h > MaxSkirtHeight {
		return MaxSkirtHeight
	}
	return h
}
