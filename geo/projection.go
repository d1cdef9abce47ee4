package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Projection maps geographic coordinates into a world space. Two world
// spaces exist side by side: the sphere (globe rendering) and the
// web-Mercator plane (flat map rendering). Tile geometry carries both so the
// renderer can morph between them.
type Projection interface {
	// ProjectPoint maps a geographic coordinate to world space.
	ProjectPoint(c GeoCoordinates) mgl64.Vec3
	// UnprojectPoint is the inverse of ProjectPoint.
	UnprojectPoint(p mgl64.Vec3) GeoCoordinates
	// SurfaceNormal is the outward unit normal of the reference surface at c.
	SurfaceNormal(c GeoCoordinates) mgl64.Vec3
	// WorldExtent is the length of the world along one axis, in meters.
	WorldExtent() float64
}

// SphereProjection projects onto a sphere of EarthRadius centered at the
// origin. Altitude displaces along the radial direction.
type SphereProjection struct {
	radius float64
}

func NewSphereProjection() *SphereProjection {
	return &SphereProjection{radius: EarthRadius}
}

func (p *SphereProjection) ProjectPoint(c GeoCoordinates) mgl64.Vec3 {
	lat := c.LatitudeRad()
	lon := c.LongitudeRad()
	r := p.radius + c.Altitude
	cosLat := math.Cos(lat)
	return mgl64.Vec3{
		r * cosLat * math.Cos(lon),
		r * cosLat * math.Sin(lon),
		r * math.Sin(lat),
	}
}

func (p *SphereProjection) UnprojectPoint(v mgl64.Vec3) GeoCoordinates {
	r := v.Len()
	if r == 0 {
		return GeoCoordinates{}
	}
	return GeoCoordinates{
		Latitude:  math.Asin(v.Z()/r) * 180 / math.Pi,
		Longitude: math.Atan2(v.Y(), v.X()) * 180 / math.Pi,
		Altitude:  r - p.radius,
	}
}

func (p *SphereProjection) SurfaceNormal(c GeoCoordinates) mgl64.Vec3 {
	lat := c.LatitudeRad()
	lon := c.LongitudeRad()
	cosLat := math.Cos(lat)
	return mgl64.Vec3{cosLat * math.Cos(lon), cosLat * math.Sin(lon), math.Sin(lat)}
}

func (p *SphereProjection) WorldExtent() float64 {
	return 2 * math.Pi * p.radius
}

// WebMercatorProjection projects onto the square web-Mercator plane, in
// meters, centered at (0,0). X grows east, Y grows north, Z carries altitude.
// Latitudes beyond MaxMercatorLatitude clamp to the edge of the square.
type WebMercatorProjection struct {
	radius float64
}

func NewWebMercatorProjection() *WebMercatorProjection {
	return &WebMercatorProjection{radius: EarthRadius}
}

func (p *WebMercatorProjection) ProjectPoint(c GeoCoordinates) mgl64.Vec3 {
	lat := clampLatitude(c.Latitude) * math.Pi / 180
	return mgl64.Vec3{
		p.radius * c.LongitudeRad(),
		p.radius * math.Log(math.Tan(math.Pi/4+lat/2)),
		c.Altitude,
	}
}

func (p *WebMercatorProjection) UnprojectPoint(v mgl64.Vec3) GeoCoordinates {
	return GeoCoordinates{
		Latitude:  (2*math.Atan(math.Exp(v.Y()/p.radius)) - math.Pi/2) * 180 / math.Pi,
		Longitude: v.X() / p.radius * 180 / math.Pi,
		Altitude:  v.Z(),
	}
}

func (p *WebMercatorProjection) SurfaceNormal(GeoCoordinates) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, 1}
}

func (p *WebMercatorProjection) WorldExtent() float64 {
	return 2 * math.Pi * p.radius
}

// NormalizedMercatorY maps a latitude to [0,1] across the Mercator square.
// yDown selects the slippy-map convention where 0 is the north edge.
func NormalizedMercatorY(latitude float64, yDown bool) float64 {
	lat := clampLatitude(latitude) * math.Pi / 180
	y := math.Log(math.Tan(math.Pi/4 + lat/2)) // [-pi, pi]
	n := (y/math.Pi + 1) / 2
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	if yDown {
		return 1 - n
	}
	return n
}

func clampLatitude(lat float64) float64 {
	if lat > MaxMercatorLatitude {
		return MaxMercatorLatitude
	}
	if lat < -MaxMercatorLatitude {
		return -MaxMercatorLatitude
	}
	return lat
}
