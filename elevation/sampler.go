// Package elevation supplies terrain heights for draping tile meshes.
package elevation

import "github.com/mantle3d/mantle/geo"

// Sampler answers the terrain height, in meters, at a geographic position.
// Implementations must be safe for concurrent use: tile generation may run
// on several workers at once.
type Sampler interface {
	SampleHeight(c geo.GeoCoordinates) float64
}

// Constant is a flat terrain at a fixed height. Mostly useful in tests.
type Constant float64

func (h Constant) SampleHeight(geo.GeoCoordinates) float64 {
	return float64(h)
}
