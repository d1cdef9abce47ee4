package geo

import "math"

// TilingScheme subdivides the world into a quadtree of tiles and answers
// where a tile key sits geographically.
type TilingScheme struct {
	projection Projection
	yDown      bool
}

// NewWebMercatorTilingScheme is the standard slippy-map scheme: the Mercator
// square split into 2^level x 2^level tiles, row 0 at the north edge.
func NewWebMercatorTilingScheme() *TilingScheme {
	return &TilingScheme{projection: NewWebMercatorProjection(), yDown: true}
}

// Projection is the flat-world projection the scheme subdivides.
func (s *TilingScheme) Projection() Projection {
	return s.projection
}

// YDown reports whether row numbers grow southward.
func (s *TilingScheme) YDown() bool {
	return s.yDown
}

// TilesAtLevel is the tile count along one axis.
func (s *TilingScheme) TilesAtLevel(level int) int {
	return 1 << level
}

// GeoBox is the geographic footprint of the tile.
func (s *TilingScheme) GeoBox(key TileKey) GeoBox {
	n := float64(s.TilesAtLevel(key.Level))
	west := float64(key.Column)/n*360 - 180
	east := float64(key.Column+1)/n*360 - 180

	rowTop, rowBottom := float64(key.Row), float64(key.Row+1)
	if !s.yDown {
		rowTop, rowBottom = n-rowBottom, n-rowTop
	}
	north := mercatorRowLatitude(rowTop, n)
	south := mercatorRowLatitude(rowBottom, n)

	return GeoBox{South: south, West: west, North: north, East: east}
}

// GeoOrigin is the geometry origin of the tile, its south-west corner.
func (s *TilingScheme) GeoOrigin(key TileKey) GeoCoordinates {
	return s.GeoBox(key).SouthWest()
}

// TileContaining returns the key of the tile covering the coordinate at the
// given level.
func (s *TilingScheme) TileContaining(c GeoCoordinates, level int) TileKey {
	n := s.TilesAtLevel(level)
	col := int(math.Floor((c.Longitude + 180) / 360 * float64(n)))
	if col < 0 {
		col = 0
	} else if col >= n {
		col = n - 1
	}
	y := NormalizedMercatorY(c.Latitude, s.yDown)
	row := int(math.Floor(y * float64(n)))
	if row < 0 {
		row = 0
	} else if row >= n {
		row = n - 1
	}
	return TileKey{Row: row, Column: col, Level: level}
}

// TilesInBox returns all keys at the level whose footprint intersects the
// box, in row-major order.
func (s *TilingScheme) TilesInBox(box GeoBox, level int) []TileKey {
	if box.Degenerate() {
		return nil
	}
	nw := s.TileContaining(GeoCoordinates{Latitude: box.North, Longitude: box.West}, level)
	se := s.TileContaining(GeoCoordinates{Latitude: box.South, Longitude: box.East}, level)

	minRow, maxRow := nw.Row, se.Row
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	minCol, maxCol := nw.Column, se.Column
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}

	keys := make([]TileKey, 0, (maxRow-minRow+1)*(maxCol-minCol+1))
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			keys = append(keys, TileKey{Row: row, Column: col, Level: level})
		}
	}
	return keys
}

// mercatorRowLatitude is the latitude of a horizontal tile edge, with row
// measured from the north edge (slippy-map convention).
func mercatorRowLatitude(row, n float64) float64 {
	return math.Atan(math.Sinh(math.Pi*(1-2*row/n))) * 180 / math.Pi
}
