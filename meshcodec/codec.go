// Package meshcodec frames terrain geometry for transport. The layout is a
// binary contract shared with renderers and must stay byte-stable:
// little-endian, header then buffers in attribute order.
//
//	magic   "MTM1" (4)
//	version uint16
//	flags   uint16 (bit 0 skirted, bit 1 simple)
//	level   int32
//	gridCells    uint32
//	gridVertices uint32
//	vertexCount  uint32
//	indexCount   uint32
//	bucketCount  uint32
//	positions          vertexCount * 3 * float32
//	mercatorPositions  vertexCount * 3 * float32
//	uvs                vertexCount * 2 * float32
//	webMercatorY       vertexCount * float32
//	skirtOffsets       vertexCount * float32
//	indices            indexCount * uint32
//	buckets            bucketCount * (start uint32, count uint32)
package meshcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mantle3d/mantle/terrain"
)

const Version uint16 = 1

var magic = [4]byte{'M', 'T', 'M', '1'}

const (
	flagSkirted = 1 << 0
	flagSimple  = 1 << 1
)

var (
	ErrBadMagic     = errors.New("meshcodec: bad magic")
	ErrBadVersion   = errors.New("meshcodec: unsupported version")
	ErrTruncated    = errors.New("meshcodec: truncated payload")
	ErrInconsistent = errors.New("meshcodec: inconsistent counts")
)

// Encode frames a geometry mode.
func Encode(m *terrain.GeometryMode) []byte {
	vcount := uint32(m.VertexCount())
	buf := bytes.NewBuffer(make([]byte, 0, 32+len(m.Positions)*4*3))

	buf.Write(magic[:])
	var flags uint16
	if m.Skirted {
		flags |= flagSkirted
	}
	if m.Simple {
		flags |= flagSimple
	}
	writeLE(buf, Version)
	writeLE(buf, flags)
	writeLE(buf, int32(m.Level))
	writeLE(buf, uint32(m.GridCells))
	writeLE(buf, uint32(m.GridVertices))
	writeLE(buf, vcount)
	writeLE(buf, uint32(len(m.Indices)))
	writeLE(buf, uint32(len(m.Buckets)))

	writeLE(buf, m.Positions)
	writeLE(buf, m.MercatorPositions)
	writeLE(buf, m.UVs)
	writeLE(buf, m.WebMercatorY)
	writeLE(buf, m.SkirtOffsets)
	writeLE(buf, m.Indices)
	for _, b := range m.Buckets {
		writeLE(buf, b.Start)
		writeLE(buf, b.Count)
	}
	return buf.Bytes()
}

// Decode parses a frame produced by Encode.
func Decode(raw []byte) (*terrain.GeometryMode, error) {
	r := bytes.NewReader(raw)

	var gotMagic [4]byte
	if _, err := r.Read(gotMagic[:]); err != nil || gotMagic != magic {
		return nil, ErrBadMagic
	}
	var version, flags uint16
	var level int32
	var gridCells, gridVertices, vcount, icount, bcount uint32
	if err := readLE(r, &version, &flags, &level, &gridCells, &gridVertices, &vcount, &icount, &bcount); err != nil {
		return nil, ErrTruncated
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}
	if gridVertices*gridVertices != vcount {
		return nil, fmt.Errorf("%w: %d vertices for grid side %d", ErrInconsistent, vcount, gridVertices)
	}
	if icount%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d not a triangle list", ErrInconsistent, icount)
	}
	// size the payload against the header before trusting its counts
	const headerSize = 32
	need := uint64(vcount)*40 + uint64(icount)*4 + uint64(bcount)*8
	if uint64(len(raw)) < headerSize+need {
		return nil, fmt.Errorf("%w: header needs %d payload bytes, have %d", ErrTruncated, need, len(raw)-headerSize)
	}

	m := &terrain.GeometryMode{
		Level:             int(level),
		Skirted:           flags&flagSkirted != 0,
		Simple:            flags&flagSimple != 0,
		GridCells:         int(gridCells),
		GridVertices:      int(gridVertices),
		Positions:         make([]float32, vcount*3),
		MercatorPositions: make([]float32, vcount*3),
		UVs:               make([]float32, vcount*2),
		WebMercatorY:      make([]float32, vcount),
		SkirtOffsets:      make([]float32, vcount),
		Indices:           make([]uint32, icount),
		Buckets:           make([]terrain.BucketRange, bcount),
	}
	if err := readLE(r, m.Positions, m.MercatorPositions, m.UVs, m.WebMercatorY, m.SkirtOffsets, m.Indices); err != nil {
		return nil, ErrTruncated
	}
	for i := range m.Buckets {
		if err := readLE(r, &m.Buckets[i].Start, &m.Buckets[i].Count); err != nil {
			return nil, ErrTruncated
		}
	}
	return m, nil
}

func writeLE(buf *bytes.Buffer, v any) {
	// bytes.Buffer writes never fail
	_ = binary.Write(buf, binary.LittleEndian, v)
}

func readLE(r *bytes.Reader, vs ...any) error {
	for _, v := range vs {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}
