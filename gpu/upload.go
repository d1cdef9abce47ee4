// Package gpu uploads terrain geometry into wgpu buffers in the vertex
// layout the tile shaders expect.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/mantle3d/mantle/terrain"
)

// TileVertex is the interleaved layout of the primary vertex buffer.
// Field order is the wire layout; do not reorder.
type TileVertex struct {
	Position     [3]float32
	UV           [2]float32
	WebMercatorY float32
	SkirtOffset  float32
}

const tileVertexStride = 7 * 4

// MercatorVertex is the layout of the secondary, Mercator-position buffer.
type MercatorVertex struct {
	Position [3]float32
}

// TileBuffers holds one uploaded patch. The index buffer is created with
// CopyDst so single buckets can be overwritten in place.
type TileBuffers struct {
	Vertex   *wgpu.Buffer
	Mercator *wgpu.Buffer
	Index    *wgpu.Buffer

	IndexCount uint32
	buckets    []terrain.BucketRange
}

// VertexLayout describes the primary buffer to pipeline creation.
// Locations: 0 position, 1 uv, 2 webMercatorY, 3 skirtOffset.
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: tileVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x3},
			{ShaderLocation: 1, Offset: 12, Format: wgpu.VertexFormatFloat32x2},
			{ShaderLocation: 2, Offset: 20, Format: wgpu.VertexFormatFloat32},
			{ShaderLocation: 3, Offset: 24, Format: wgpu.VertexFormatFloat32},
		},
	}
}

// MercatorLayout describes the secondary buffer. Location: 4.
func MercatorLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 3 * 4,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 4, Offset: 0, Format: wgpu.VertexFormatFloat32x3},
		},
	}
}

// UploadGeometry creates the device buffers for a geometry mode.
func UploadGeometry(device *wgpu.Device, mode *terrain.GeometryMode) (*TileBuffers, error) {
	vcount := mode.VertexCount()
	vertices := make([]TileVertex, vcount)
	mercator := make([]MercatorVertex, vcount)
	for i := 0; i < vcount; i++ {
		vertices[i] = TileVertex{
			Position:     [3]float32{mode.Positions[i*3], mode.Positions[i*3+1], mode.Positions[i*3+2]},
			UV:           [2]float32{mode.UVs[i*2], mode.UVs[i*2+1]},
			WebMercatorY: mode.WebMercatorY[i],
			SkirtOffset:  mode.SkirtOffsets[i],
		}
		mercator[i] = MercatorVertex{
			Position: [3]float32{mode.MercatorPositions[i*3], mode.MercatorPositions[i*3+1], mode.MercatorPositions[i*3+2]},
		}
	}

	vertexBuf, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Tile Vertex Buffer",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create vertex buffer: %w", err)
	}
	mercatorBuf, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Tile Mercator Buffer",
		Contents: wgpu.ToBytes(mercator),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		vertexBuf.Release()
		return nil, fmt.Errorf("gpu: create mercator buffer: %w", err)
	}
	indexBuf, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Tile Index Buffer",
		Contents: wgpu.ToBytes(mode.Indices),
		Usage:    wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertexBuf.Release()
		mercatorBuf.Release()
		return nil, fmt.Errorf("gpu: create index buffer: %w", err)
	}

	buckets := make([]terrain.BucketRange, len(mode.Buckets))
	copy(buckets, mode.Buckets)

	return &TileBuffers{
		Vertex:     vertexBuf,
		Mercator:   mercatorBuf,
		Index:      indexBuf,
		IndexCount: uint32(len(mode.Indices)),
		buckets:    buckets,
	}, nil
}

// WriteBucket overwrites one bucket's index range in place. The replacement
// must match the bucket's index count exactly; everything outside the range
// stays untouched.
func (b *TileBuffers) WriteBucket(queue *wgpu.Queue, bucket int, indices []uint32) error {
	if bucket < 0 || bucket >= len(b.buckets) {
		return fmt.Errorf("gpu: bucket %d out of range [0,%d)", bucket, len(b.buckets))
	}
	r := b.buckets[bucket]
	if uint32(len(indices)) != r.Count {
		return fmt.Errorf("gpu: bucket %d holds %d indices, got %d", bucket, r.Count, len(indices))
	}
	return queue.WriteBuffer(b.Index, uint64(r.Start)*4, wgpu.ToBytes(indices))
}

// Release frees the device buffers.
func (b *TileBuffers) Release() {
	if b.Vertex != nil {
		b.Vertex.Release()
	}
	if b.Mercator != nil {
		b.Mercator.Release()
	}
	if b.Index != nil {
		b.Index.Release()
	}
}
