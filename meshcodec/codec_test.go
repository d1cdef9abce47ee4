package meshcodec

import (
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"github.com/mantle3d/mantle/geo"
	"github.com/mantle3d/mantle/terrain"
)

func testMode(t *testing.T) *terrain.GeometryMode {
	t.Helper()
	gen := terrain.NewPatchGenerator(geo.NewWebMercatorTilingScheme(), 3, nil)
	mode, err := gen.Generate(geo.NewTileKey(5, 9, 4), true)
	if err != nil {
		t.Fatal(err)
	}
	return mode
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	mode := testMode(t)
	decoded, err := Decode(Encode(mode))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(mode, decoded) {
		t.Error("decoded mode differs from original")
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	raw := Encode(testMode(t))
	raw[0] = 'X'
	if _, err := Decode(raw); !errors.Is(err, ErrBadMagic) {
		t.Errorf("got %v, want ErrBadMagic", err)
	}
}

func TestDecodeRejectsBadVersion(t *testing.T) {
	raw := Encode(testMode(t))
	raw[4] = 0xFF
	if _, err := Decode(raw); !errors.Is(err, ErrBadVersion) {
		t.Errorf("got %v, want ErrBadVersion", err)
	}
}

func TestDecodeRejectsTruncated(t *testing.T) {
	raw := Encode(testMode(t))
	for _, n := range []int{3, 10, len(raw) / 2, len(raw) - 1} {
		if _, err := Decode(raw[:n]); err == nil {
			t.Errorf("payload truncated to %d bytes accepted", n)
		}
	}
}

// A short frame whose header advertises huge counts must be rejected on the
// header alone, before any buffer is sized from it.
func TestDecodeRejectsOversizedHeaderCounts(t *testing.T) {
	raw := Encode(testMode(t))[:32]
	binary.LittleEndian.PutUint32(raw[16:], 0xFFFF)     // grid side
	binary.LittleEndian.PutUint32(raw[20:], 0xFFFE0001) // vertices = side^2
	binary.LittleEndian.PutUint32(raw[24:], 0)
	binary.LittleEndian.PutUint32(raw[28:], 0)
	if _, err := Decode(raw); !errors.Is(err, ErrTruncated) {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}

func TestDecodeRejectsInconsistentCounts(t *testing.T) {
	raw := Encode(testMode(t))
	// corrupt the grid side so it no longer squares to the vertex count
	raw[16] = 1
	if _, err := Decode(raw); !errors.Is(err, ErrInconsistent) {
		t.Errorf("got %v, want ErrInconsistent", err)
	}
}
