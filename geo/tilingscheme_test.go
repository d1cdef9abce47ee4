package geo

import (
	"math"
	"testing"
)

func TestGeoBoxLevelZeroCoversWorld(t *testing.T) {
	s := NewWebMercatorTilingScheme()
	box := s.GeoBox(NewTileKey(0, 0, 0))
	if box.West != -180 || box.East != 180 {
		t.Errorf("level-0 longitudes = [%f, %f]", box.West, box.East)
	}
	if math.Abs(box.North-MaxMercatorLatitude) > 1e-9 || math.Abs(box.South+MaxMercatorLatitude) > 1e-9 {
		t.Errorf("level-0 latitudes = [%f, %f]", box.South, box.North)
	}
}

func TestGeoBoxRowZeroIsNorth(t *testing.T) {
	s := NewWebMercatorTilingScheme()
	north := s.GeoBox(NewTileKey(0, 0, 1))
	south := s.GeoBox(NewTileKey(1, 0, 1))
	if north.South != 0 || south.North != 0 {
		t.Errorf("hemisphere split at %f / %f, want 0", north.South, south.North)
	}
	if north.North < south.North {
		t.Error("row 0 should be the northern tile")
	}
}

func TestChildrenCoverParentBox(t *testing.T) {
	s := NewWebMercatorTilingScheme()
	parent := NewTileKey(2, 3, 3)
	pb := s.GeoBox(parent)
	for _, child := range parent.Children() {
		cb := s.GeoBox(child)
		if cb.West < pb.West-1e-9 || cb.East > pb.East+1e-9 ||
			cb.South < pb.South-1e-9 || cb.North > pb.North+1e-9 {
			t.Errorf("child %v box %+v escapes parent %+v", child, cb, pb)
		}
	}
}

func TestTileContainingRoundTrip(t *testing.T) {
	s := NewWebMercatorTilingScheme()
	key := NewTileKey(391, 550, 10)
	center := s.GeoBox(key).Center()
	if got := s.TileContaining(center, 10); got != key {
		t.Errorf("TileContaining(center of %v) = %v", key, got)
	}
}

func TestTilesInBox(t *testing.T) {
	s := NewWebMercatorTilingScheme()
	box := GeoBox{South: -1, West: -1, North: 1, East: 1}
	keys := s.TilesInBox(box, 2)
	if len(keys) != 4 {
		t.Fatalf("got %d tiles, want 4", len(keys))
	}
	for _, k := range keys {
		if !k.Valid() {
			t.Errorf("invalid key %v", k)
		}
	}
	if got := s.TilesInBox(GeoBox{}, 2); got != nil {
		t.Errorf("degenerate box returned %v", got)
	}
}
