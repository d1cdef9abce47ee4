package geo

import (
	"math"
	"testing"
)

func TestSphereProjectRoundTrip(t *testing.T) {
	p := NewSphereProjection()
	coords := []GeoCoordinates{
		{Latitude: 0, Longitude: 0},
		{Latitude: 48.2, Longitude: 16.37, Altitude: 150},
		{Latitude: -33.9, Longitude: 151.2},
		{Latitude: 80, Longitude: -170, Altitude: -20},
	}
	for _, c := range coords {
		back := p.UnprojectPoint(p.ProjectPoint(c))
		if math.Abs(back.Latitude-c.Latitude) > 1e-9 ||
			math.Abs(back.Longitude-c.Longitude) > 1e-9 ||
			math.Abs(back.Altitude-c.Altitude) > 1e-6 {
			t.Errorf("round trip of %+v gave %+v", c, back)
		}
	}
}

func TestSphereProjectEquatorPrimeMeridian(t *testing.T) {
	p := NewSphereProjection()
	v := p.ProjectPoint(GeoCoordinates{})
	if math.Abs(v.X()-EarthRadius) > 1e-6 || math.Abs(v.Y()) > 1e-6 || math.Abs(v.Z()) > 1e-6 {
		t.Errorf("equator/prime meridian projected to %v", v)
	}
}

func TestWebMercatorRoundTrip(t *testing.T) {
	p := NewWebMercatorProjection()
	c := GeoCoordinates{Latitude: 52.52, Longitude: 13.405, Altitude: 34}
	back := p.UnprojectPoint(p.ProjectPoint(c))
	if math.Abs(back.Latitude-c.Latitude) > 1e-9 ||
		math.Abs(back.Longitude-c.Longitude) > 1e-9 ||
		back.Altitude != c.Altitude {
		t.Errorf("round trip of %+v gave %+v", c, back)
	}
}

func TestWebMercatorClampsPoles(t *testing.T) {
	p := NewWebMercatorProjection()
	pole := p.ProjectPoint(GeoCoordinates{Latitude: 90})
	edge := p.ProjectPoint(GeoCoordinates{Latitude: MaxMercatorLatitude})
	if pole.Y() != edge.Y() {
		t.Errorf("pole Y %f, edge Y %f", pole.Y(), edge.Y())
	}
	// The clamped square is half the world extent from the center.
	if math.Abs(edge.Y()-math.Pi*EarthRadius) > 1 {
		t.Errorf("edge Y %f, want ~%f", edge.Y(), math.Pi*EarthRadius)
	}
}

func TestNormalizedMercatorY(t *testing.T) {
	if y := NormalizedMercatorY(0, false); math.Abs(y-0.5) > 1e-12 {
		t.Errorf("equator yUp = %f, want 0.5", y)
	}
	if y := NormalizedMercatorY(MaxMercatorLatitude, true); math.Abs(y) > 1e-9 {
		t.Errorf("north edge yDown = %f, want 0", y)
	}
	if y := NormalizedMercatorY(-MaxMercatorLatitude, true); math.Abs(y-1) > 1e-9 {
		t.Errorf("south edge yDown = %f, want 1", y)
	}
}
