package geo

// TileKey addresses one quadtree tile as (row, column, level). Keys are
// immutable values and safe to use as map keys.
type TileKey struct {
	Row    int
	Column int
	Level  int
}

func NewTileKey(row, column, level int) TileKey {
	return TileKey{Row: row, Column: column, Level: level}
}

// Valid reports whether the key addresses an existing quadtree tile.
func (k TileKey) Valid() bool {
	if k.Level < 0 || k.Level > 31 {
		return false
	}
	n := 1 << k.Level
	return k.Row >= 0 && k.Row < n && k.Column >= 0 && k.Column < n
}

// MortonCode packs the key into a single uint64 that is unique across all
// levels: a per-level prefix followed by the bit-interleave of column (even
// bits) and row (odd bits). Codes of tiles at the same level are spatially
// clustered.
func (k TileKey) MortonCode() uint64 {
	// prefix is the total tile count of all coarser levels,
	// ((1 << (2*level)) - 1) / 3
	prefix := ((uint64(1) << (2 * uint(k.Level))) - 1) / 3
	return prefix + uint64(InterleaveBits(uint32(k.Column), uint32(k.Row)))
}

// Parent returns the key one level coarser. The level-0 key is its own
// parent.
func (k TileKey) Parent() TileKey {
	if k.Level == 0 {
		return k
	}
	return TileKey{Row: k.Row / 2, Column: k.Column / 2, Level: k.Level - 1}
}

// Children returns the four keys one level finer, in Morton order.
func (k TileKey) Children() [4]TileKey {
	r, c, l := k.Row*2, k.Column*2, k.Level+1
	return [4]TileKey{
		{Row: r, Column: c, Level: l},
		{Row: r, Column: c + 1, Level: l},
		{Row: r + 1, Column: c, Level: l},
		{Row: r + 1, Column: c + 1, Level: l},
	}
}

// InterleaveBits spreads the low 32 bits of x into the even bit positions
// and y into the odd ones.
func InterleaveBits(x, y uint32) uint64 {
	return spreadBits(x) | spreadBits(y)<<1
}

func spreadBits(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000ffff0000ffff
	x = (x | x<<8) & 0x00ff00ff00ff00ff
	x = (x | x<<4) & 0x0f0f0f0f0f0f0f0f
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}
