package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mantle3d/mantle/geo"
)

// TileTransformation pairs a tile origin's placement under the sphere and
// Mercator projections. Rotations are optional: a nil matrix means the tile
// needs no orientation in that world (the Mercator plane is axis-aligned).
// Values are immutable; recompute per visibility check.
type TileTransformation struct {
	SpherePosition   mgl64.Vec3
	SphereRotation   *mgl64.Mat4
	MercatorPosition mgl64.Vec3
	MercatorRotation *mgl64.Mat4
}

// NewTileTransformation computes both placements for a tile key. The sphere
// side carries the local east/north/up tangent frame; the Mercator side has
// no rotation.
func NewTileTransformation(scheme *geo.TilingScheme, sphere, mercator geo.Projection, key geo.TileKey) TileTransformation {
	origin := scheme.GeoOrigin(key)
	rot := tangentFrame(origin)
	return TileTransformation{
		SpherePosition:   sphere.ProjectPoint(origin),
		SphereRotation:   &rot,
		MercatorPosition: mercator.ProjectPoint(origin),
		MercatorRotation: nil,
	}
}

// Interpolate blends the two placements; t is clamped to [0,1], 0 is the
// sphere placement, 1 the Mercator placement. Positions blend linearly and
// rotations blend element-wise when both sides define one. When only one
// side has a rotation, that rotation applies on its own half of the range
// (sphere for t < 0.5, Mercator for t > 0.5) and the result has none
// otherwise, a hard switch at t = 0.5 that is part of the contract.
func (tt TileTransformation) Interpolate(t float64) (mgl64.Vec3, *mgl64.Mat4) {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	pos := tt.SpherePosition.Mul(1 - t).Add(tt.MercatorPosition.Mul(t))

	switch {
	case tt.SphereRotation != nil && tt.MercatorRotation != nil:
		m := lerpMat4(*tt.SphereRotation, *tt.MercatorRotation, t)
		return pos, &m
	case tt.SphereRotation != nil:
		if t < 0.5 {
			m := *tt.SphereRotation
			return pos, &m
		}
		return pos, nil
	case tt.MercatorRotation != nil:
		if t > 0.5 {
			m := *tt.MercatorRotation
			return pos, &m
		}
		return pos, nil
	default:
		return pos, nil
	}
}

func lerpMat4(a, b mgl64.Mat4, t float64) mgl64.Mat4 {
	var out mgl64.Mat4
	for i := range a {
		out[i] = a[i]*(1-t) + b[i]*t
	}
	return out
}

// tangentFrame is the east/north/up basis at a geographic position, as a
// rotation matrix with east, north, up in the first three columns.
func tangentFrame(c geo.GeoCoordinates) mgl64.Mat4 {
	lat := c.LatitudeRad()
	lon := c.LongitudeRad()

	up := mgl64.Vec3{
		math.Cos(lat) * math.Cos(lon),
		math.Cos(lat) * math.Sin(lon),
		math.Sin(lat),
	}
	east := mgl64.Vec3{-math.Sin(lon), math.Cos(lon), 0}
	north := up.Cross(east)

	return mgl64.Mat4{
		east.X(), east.Y(), east.Z(), 0,
		north.X(), north.Y(), north.Z(), 0,
		up.X(), up.Y(), up.Z(), 0,
		0, 0, 0, 1,
	}
}
