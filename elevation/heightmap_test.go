package elevation

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/mantle3d/mantle/geo"
)

var testBox = geo.GeoBox{South: 0, West: 0, North: 10, East: 10}

func TestHeightmapExactAtNodes(t *testing.T) {
	// 2x2 grid, row 0 (north): 100, 200; row 1 (south): 300, 400
	hm, err := NewHeightmap(testBox, 2, 2, []float64{100, 200, 300, 400})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		lat, lon, want float64
	}{
		{10, 0, 100},
		{10, 10, 200},
		{0, 0, 300},
		{0, 10, 400},
	}
	for _, c := range cases {
		got := hm.SampleHeight(geo.GeoCoordinates{Latitude: c.lat, Longitude: c.lon})
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("height at (%f,%f) = %f, want %f", c.lat, c.lon, got, c.want)
		}
	}
}

func TestHeightmapBilinearBounded(t *testing.T) {
	hm, err := NewHeightmap(testBox, 2, 2, []float64{100, 200, 300, 400})
	if err != nil {
		t.Fatal(err)
	}
	center := hm.SampleHeight(geo.GeoCoordinates{Latitude: 5, Longitude: 5})
	if center < 100 || center > 400 {
		t.Errorf("center sample %f outside node extremes", center)
	}
	if math.Abs(center-250) > 1e-12 {
		t.Errorf("center sample = %f, want 250", center)
	}
}

func TestHeightmapClampsOutside(t *testing.T) {
	hm, err := NewHeightmap(testBox, 2, 2, []float64{100, 200, 300, 400})
	if err != nil {
		t.Fatal(err)
	}
	inside := hm.SampleHeight(geo.GeoCoordinates{Latitude: 10, Longitude: 0})
	outside := hm.SampleHeight(geo.GeoCoordinates{Latitude: 50, Longitude: -50})
	if inside != outside {
		t.Errorf("outside sample %f, want clamped %f", outside, inside)
	}
}

func TestHeightmapRejectsBadInput(t *testing.T) {
	if _, err := NewHeightmap(geo.GeoBox{}, 2, 2, make([]float64, 4)); err == nil {
		t.Error("degenerate box accepted")
	}
	if _, err := NewHeightmap(testBox, 1, 2, make([]float64, 2)); err == nil {
		t.Error("1-wide grid accepted")
	}
	if _, err := NewHeightmap(testBox, 2, 2, make([]float64, 3)); err == nil {
		t.Error("short data accepted")
	}
}

func TestFromPNGGray16(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 2))
	img.SetGray16(0, 0, color.Gray16{Y: 1000})
	img.SetGray16(1, 0, color.Gray16{Y: 2000})
	img.SetGray16(0, 1, color.Gray16{Y: 3000})
	img.SetGray16(1, 1, color.Gray16{Y: 4000})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	hm, err := FromPNG(buf.Bytes(), testBox, DecodeGray16)
	if err != nil {
		t.Fatal(err)
	}
	got := hm.SampleHeight(geo.GeoCoordinates{Latitude: 10, Longitude: 0})
	if got != 1000 {
		t.Errorf("north-west sample = %f, want 1000", got)
	}
}

func TestDecodeTerrarium(t *testing.T) {
	// sea level encodes as (128, 0, 0)
	if h := DecodeTerrarium(128<<8, 0, 0); h != 0 {
		t.Errorf("terrarium sea level = %f, want 0", h)
	}
	if h := DecodeTerrarium(129<<8, 10<<8, 0); h != 266 {
		t.Errorf("terrarium 266m = %f", h)
	}
}

func TestConstantSampler(t *testing.T) {
	s := Constant(42)
	if h := s.SampleHeight(geo.GeoCoordinates{Latitude: 1, Longitude: 2}); h != 42 {
		t.Errorf("constant sampler = %f, want 42", h)
	}
}
