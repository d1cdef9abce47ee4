package geo

import "testing"

func TestTileKeyValid(t *testing.T) {
	cases := []struct {
		key  TileKey
		want bool
	}{
		{TileKey{0, 0, 0}, true},
		{TileKey{0, 1, 0}, false},
		{TileKey{3, 3, 2}, true},
		{TileKey{4, 0, 2}, false},
		{TileKey{-1, 0, 2}, false},
		{TileKey{0, 0, -1}, false},
		{TileKey{0, 0, 32}, false},
	}
	for _, c := range cases {
		if got := c.key.Valid(); got != c.want {
			t.Errorf("Valid(%v) = %v, want %v", c.key, got, c.want)
		}
	}
}

func TestMortonCodeUniqueAcrossLevels(t *testing.T) {
	seen := map[uint64]TileKey{}
	for level := 0; level <= 4; level++ {
		n := 1 << level
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				key := NewTileKey(row, col, level)
				code := key.MortonCode()
				if prev, ok := seen[code]; ok {
					t.Fatalf("code %d shared by %v and %v", code, prev, key)
				}
				seen[code] = key
			}
		}
	}
	// Level-0 code must be 0, level-1 codes start right after it.
	if code := NewTileKey(0, 0, 0).MortonCode(); code != 0 {
		t.Errorf("level-0 code = %d, want 0", code)
	}
	if code := NewTileKey(0, 0, 1).MortonCode(); code != 1 {
		t.Errorf("level-1 first code = %d, want 1", code)
	}
}

func TestParentChildren(t *testing.T) {
	key := NewTileKey(5, 6, 3)
	for _, child := range key.Children() {
		if child.Parent() != key {
			t.Errorf("Parent(%v) = %v, want %v", child, child.Parent(), key)
		}
	}
	root := NewTileKey(0, 0, 0)
	if root.Parent() != root {
		t.Errorf("root parent = %v, want root", root.Parent())
	}
}

func TestInterleaveBits(t *testing.T) {
	if got := InterleaveBits(0, 0); got != 0 {
		t.Errorf("InterleaveBits(0,0) = %d", got)
	}
	if got := InterleaveBits(1, 0); got != 1 {
		t.Errorf("InterleaveBits(1,0) = %d", got)
	}
	if got := InterleaveBits(0, 1); got != 2 {
		t.Errorf("InterleaveBits(0,1) = %d", got)
	}
	if got := InterleaveBits(3, 3); got != 15 {
		t.Errorf("InterleaveBits(3,3) = %d", got)
	}
}
