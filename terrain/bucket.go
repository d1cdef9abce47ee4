// Package terrain generates draped tile meshes: adaptively subdivided
// patches with skirts, dual sphere/Mercator vertex positions for
// globe-to-flat morphing, and Morton-bucketed triangle indices so single
// cells can be re-uploaded without rebuilding the mesh.
package terrain

import "github.com/mantle3d/mantle/geo"

// BucketRange is one bucket's contiguous slice of the index buffer.
type BucketRange struct {
	Start uint32
	Count uint32
}

// BucketCount is the number of buckets of a patch with cells x cells
// interior grid cells.
func BucketCount(cells int) int {
	return cells * cells
}

// BucketIndex maps a cell coordinate within a subdivided patch to its Morton
// bucket slot. cells is the interior cell count per axis; skirted patches
// address the border ring with x or y equal to -1 or cells, and those clamp
// to the nearest interior cell, so skirt triangles share that cell's update
// granularity. Over the interior the mapping is a bijection onto
// [0, BucketCount).
func BucketIndex(x, y, cells int) int {
	if x < 0 {
		x = 0
	} else if x >= cells {
		x = cells - 1
	}
	if y < 0 {
		y = 0
	} else if y >= cells {
		y = cells - 1
	}
	return int(geo.InterleaveBits(uint32(x), uint32(y)))
}
