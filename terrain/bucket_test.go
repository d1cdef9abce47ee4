package terrain

import (
	"testing"

	"github.com/mantle3d/mantle/geo"
)

func TestBucketIndexBijection(t *testing.T) {
	const cells = 8
	seen := make(map[int][2]int)
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			b := BucketIndex(x, y, cells)
			if b < 0 || b >= BucketCount(cells) {
				t.Fatalf("bucket %d out of range for cell (%d,%d)", b, x, y)
			}
			if prev, ok := seen[b]; ok {
				t.Fatalf("bucket %d shared by (%d,%d) and (%d,%d)", b, prev[0], prev[1], x, y)
			}
			seen[b] = [2]int{x, y}
		}
	}
	if len(seen) != BucketCount(cells) {
		t.Errorf("covered %d buckets, want %d", len(seen), BucketCount(cells))
	}
}

func TestBucketIndexClampsSkirtCells(t *testing.T) {
	const cells = 4
	cases := []struct{ x, y, cx, cy int }{
		{-1, 2, 0, 2},
		{cells, 2, cells - 1, 2},
		{2, -1, 2, 0},
		{2, cells, 2, cells - 1},
		{-1, -1, 0, 0},
		{cells, cells, cells - 1, cells - 1},
	}
	for _, c := range cases {
		if got, want := BucketIndex(c.x, c.y, cells), BucketIndex(c.cx, c.cy, cells); got != want {
			t.Errorf("skirt cell (%d,%d) bucket %d, want interior (%d,%d) bucket %d",
				c.x, c.y, got, c.cx, c.cy, want)
		}
	}
}

// Bucket ranges must be contiguous and their union must cover the index
// buffer exactly, both with and without a skirt.
func TestBucketRangesCoverIndexBuffer(t *testing.T) {
	gen := NewPatchGenerator(geo.NewWebMercatorTilingScheme(), 3, nil)
	for _, skirted := range []bool{false, true} {
		mode, err := gen.Generate(geo.NewTileKey(2, 5, 4), skirted)
		if err != nil {
			t.Fatal(err)
		}
		if len(mode.Buckets) != BucketCount(mode.GridCells) {
			t.Fatalf("skirted=%v: %d buckets, want %d", skirted, len(mode.Buckets), BucketCount(mode.GridCells))
		}
		var next uint32
		for b, r := range mode.Buckets {
			if r.Start != next {
				t.Fatalf("skirted=%v: bucket %d starts at %d, want %d", skirted, b, r.Start, next)
			}
			if r.Count == 0 || r.Count%3 != 0 {
				t.Fatalf("skirted=%v: bucket %d has count %d", skirted, b, r.Count)
			}
			next = r.Start + r.Count
		}
		if next != uint32(len(mode.Indices)) {
			t.Errorf("skirted=%v: ranges cover %d indices, buffer has %d", skirted, next, len(mode.Indices))
		}
	}
}

// Without a skirt every bucket owns exactly its cell's two triangles.
func TestInteriorBucketsOwnTwoTriangles(t *testing.T) {
	gen := NewPatchGenerator(geo.NewWebMercatorTilingScheme(), 3, nil)
	mode, err := gen.Generate(geo.NewTileKey(2, 5, 4), false)
	if err != nil {
		t.Fatal(err)
	}
	for b, r := range mode.Buckets {
		if r.Count != 6 {
			t.Errorf("bucket %d owns %d indices, want 6", b, r.Count)
		}
	}
}
