package terrain

// GeometryMode bundles the vertex and index buffers of one cached patch
// shape. Modes are created once per cache key and shared by every tile with
// that shape; callers must treat all slices as read-only.
//
// Buffer layout, per vertex:
//
//	Positions          3 x float32, sphere projection, tile-local
//	MercatorPositions  3 x float32, Mercator projection, tile-local
//	UVs                2 x float32, clamped to [0,1]
//	WebMercatorY       1 x float32, normalized Mercator Y for blend shading
//	SkirtOffsets       1 x float32, non-zero on the skirt ring
//
// Indices is a triangle list laid out bucket by bucket; Buckets maps a
// Morton bucket slot to its index range.
type GeometryMode struct {
	Level        int
	Skirted      bool
	Simple       bool
	GridCells    int // interior cells per axis
	GridVertices int // vertices per side, including the skirt ring

	Positions         []float32
	MercatorPositions []float32
	UVs               []float32
	WebMercatorY      []float32
	SkirtOffsets      []float32
	Indices           []uint32
	Buckets           []BucketRange
}

// VertexCount is the number of vertices in the mode's buffers.
func (m *GeometryMode) VertexCount() int {
	return m.GridVertices * m.GridVertices
}

// TriangleCount is the number of triangles in the index buffer.
func (m *GeometryMode) TriangleCount() int {
	return len(m.Indices) / 3
}

// BucketIndices returns the slice of the index buffer owned by one bucket.
// The returned slice aliases the shared buffer and must not be modified.
func (m *GeometryMode) BucketIndices(bucket int) []uint32 {
	r := m.Buckets[bucket]
	return m.Indices[r.Start : r.Start+r.Count]
}
