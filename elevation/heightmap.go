package elevation

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/mantle3d/mantle/geo"
)

// PixelDecoder turns one heightmap pixel into meters.
type PixelDecoder func(r, g, b uint32) float64

// DecodeGray16 reads 16-bit grayscale heights, 1 unit = 1 meter.
func DecodeGray16(r, _, _ uint32) float64 {
	return float64(r)
}

// DecodeTerrarium reads Mapzen terrarium-encoded RGB heights.
func DecodeTerrarium(r, g, b uint32) float64 {
	// channels arrive 16-bit from image.Image.At, use the high bytes
	r8, g8, b8 := float64(r>>8), float64(g>>8), float64(b>>8)
	return r8*256 + g8 + b8/256 - 32768
}

// Heightmap is a regular grid of heights over a geographic box with
// bilinear sampling between grid nodes. The grid is row-major with row 0 at
// the north edge, matching image layout.
type Heightmap struct {
	box    geo.GeoBox
	width  int
	height int
	data   []float64
}

// NewHeightmap wraps an existing grid. data is row-major, len = width*height.
func NewHeightmap(box geo.GeoBox, width, height int, data []float64) (*Heightmap, error) {
	if box.Degenerate() {
		return nil, fmt.Errorf("heightmap: degenerate geo box %+v", box)
	}
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("heightmap: grid %dx%d too small", width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("heightmap: %d samples for %dx%d grid", len(data), width, height)
	}
	return &Heightmap{box: box, width: width, height: height, data: data}, nil
}

// FromImage samples every pixel of img through decode.
func FromImage(img image.Image, box geo.GeoBox, decode PixelDecoder) (*Heightmap, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]float64, 0, w*h)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			data = append(data, decode(r, g, b))
		}
	}
	return NewHeightmap(box, w, h, data)
}

// FromPNG decodes a PNG heightmap.
func FromPNG(raw []byte, box geo.GeoBox, decode PixelDecoder) (*Heightmap, error) {
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("heightmap: decode png: %w", err)
	}
	return FromImage(img, box, decode)
}

// FromTIFF decodes a TIFF heightmap.
func FromTIFF(raw []byte, box geo.GeoBox, decode PixelDecoder) (*Heightmap, error) {
	img, err := tiff.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("heightmap: decode tiff: %w", err)
	}
	return FromImage(img, box, decode)
}

// ResampleImage scales a heightmap image to the given grid size before
// decoding, so a single source image can feed several subdivision levels.
func ResampleImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA64(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Box is the geographic footprint the grid covers.
func (h *Heightmap) Box() geo.GeoBox {
	return h.box
}

// SampleHeight interpolates bilinearly. Coordinates outside the box clamp to
// the nearest edge.
func (h *Heightmap) SampleHeight(c geo.GeoCoordinates) float64 {
	u := (c.Longitude - h.box.West) / h.box.Width()
	v := (h.box.North - c.Latitude) / h.box.Height() // row 0 at north
	u = clamp01(u)
	v = clamp01(v)

	fx := u * float64(h.width-1)
	fy := v * float64(h.height-1)
	x0, y0 := int(fx), int(fy)
	if x0 >= h.width-1 {
		x0 = h.width - 2
	}
	if y0 >= h.height-1 {
		y0 = h.height - 2
	}
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	h00 := h.data[y0*h.width+x0]
	h10 := h.data[y0*h.width+x0+1]
	h01 := h.data[(y0+1)*h.width+x0]
	h11 := h.data[(y0+1)*h.width+x0+1]

	top := h00 + (h10-h00)*tx
	bottom := h01 + (h11-h01)*tx
	return top + (bottom-top)*ty
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
