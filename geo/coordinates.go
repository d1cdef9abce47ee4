// Package geo provides geographic coordinates, projections and tiling
// schemes for quadtree map tiles.
package geo

import "math"

// EarthRadius is the mean earth radius in meters used by both projections.
const EarthRadius = 6371000.0

// MaxMercatorLatitude is the latitude bound of the square web-Mercator world.
const MaxMercatorLatitude = 85.05112877980659

// GeoCoordinates is a geographic position. Latitude and Longitude are in
// degrees, Altitude in meters above the reference surface.
type GeoCoordinates struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

func NewGeoCoordinates(latitude, longitude float64) GeoCoordinates {
	return GeoCoordinates{Latitude: latitude, Longitude: longitude}
}

func (c GeoCoordinates) LatitudeRad() float64 {
	return c.Latitude * math.Pi / 180
}

func (c GeoCoordinates) LongitudeRad() float64 {
	return c.Longitude * math.Pi / 180
}

// WithAltitude returns a copy of c at the given altitude.
func (c GeoCoordinates) WithAltitude(altitude float64) GeoCoordinates {
	c.Altitude = altitude
	return c
}

// GeoBox is an axis-aligned geographic rectangle in degrees.
type GeoBox struct {
	South float64
	West  float64
	North float64
	East  float64
}

func (b GeoBox) Width() float64 {
	return b.East - b.West
}

func (b GeoBox) Height() float64 {
	return b.North - b.South
}

func (b GeoBox) Center() GeoCoordinates {
	return GeoCoordinates{
		Latitude:  (b.South + b.North) / 2,
		Longitude: (b.West + b.East) / 2,
	}
}

// SouthWest is the tile geometry origin corner.
func (b GeoBox) SouthWest() GeoCoordinates {
	return GeoCoordinates{Latitude: b.South, Longitude: b.West}
}

// Degenerate reports whether the box has no area.
func (b GeoBox) Degenerate() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Lerp interpolates inside the box. u runs west to east, v south to north,
// both unclamped on purpose so skirt rings can reach outside the box.
func (b GeoBox) Lerp(u, v float64) GeoCoordinates {
	return GeoCoordinates{
		Latitude:  b.South + v*b.Height(),
		Longitude: b.West + u*b.Width(),
	}
}

// Contains reports whether the coordinate lies inside the box, ignoring
// altitude.
func (b GeoBox) Contains(c GeoCoordinates) bool {
	return c.Latitude >= b.South && c.Latitude <= b.North &&
		c.Longitude >= b.West && c.Longitude <= b.East
}
