package raster

import (
	"encoding/binary"
	"image"
	"math"
)

// Buffer is a row-major destination of one Color word per pixel.
// Every write is clipped to the buffer; out-of-bounds coordinates are
// silently ignored.
type Buffer struct {
	Pix    []uint32
	Width  int
	Height int
}

// NewBuffer allocates a zeroed buffer. Negative sizes, and sizes whose
// pixel count overflows an int, give an empty buffer.
func NewBuffer(width, height int) *Buffer {
	if width <= 0 || height <= 0 || height > math.MaxInt/width {
		return &Buffer{}
	}
	return &Buffer{Pix: make([]uint32, width*height), Width: width, Height: height}
}

// Wrap views a caller-owned slice as a Buffer. Rows that pix is too short to
// hold are dropped rather than written past its end.
func Wrap(pix []uint32, width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		return &Buffer{Pix: pix}
	}
	if rows := len(pix) / width; rows < height {
		height = rows
	}
	return &Buffer{Pix: pix, Width: width, Height: height}
}

// Over composites src over dst. Alpha 0 keeps dst, alpha 255 replaces it,
// anything else interpolates each channel by alpha/255. The result is
// always opaque.
func Over(dst, src Color) Color {
	a := uint32(src.A())
	switch a {
	case 0:
		return dst
	case 255:
		return src
	}
	inv := 255 - a
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*inv + 127) / 255)
	}
	return ARGB(255, mix(src.R(), dst.R()), mix(src.G(), dst.G()), mix(src.B(), dst.B()))
}

func (b *Buffer) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// At returns the pixel at (x, y), or Transparent outside the buffer.
func (b *Buffer) At(x, y int) Color {
	if !b.inside(x, y) {
		return Transparent
	}
	return Color(b.Pix[y*b.Width+x])
}

// Set replaces the pixel at (x, y).
func (b *Buffer) Set(x, y int, c Color) {
	if b.inside(x, y) {
		b.Pix[y*b.Width+x] = uint32(c)
	}
}

// Blend composites c over the pixel at (x, y).
func (b *Buffer) Blend(x, y int, c Color) {
	if b.inside(x, y) {
		i := y*b.Width + x
		b.Pix[i] = uint32(Over(Color(b.Pix[i]), c))
	}
}

// Fill replaces every pixel with c.
func (b *Buffer) Fill(c Color) {
	n := b.Width * b.Height
	for i := 0; i < n; i++ {
		b.Pix[i] = uint32(c)
	}
}

// Clip intersects the half-open span [x0,x1)×[y0,y1) with the buffer.
// ok is false when nothing is left.
func (b *Buffer) Clip(x0, y0, x1, y1 int) (cx0, cy0, cx1, cy1 int, ok bool) {
	cx0, cy0 = max(x0, 0), max(y0, 0)
	cx1, cy1 = min(x1, b.Width), min(y1, b.Height)
	return cx0, cy0, cx1, cy1, cx0 < cx1 && cy0 < cy1
}

// FillRect blends c over the half-open span [x0,x1)×[y0,y1).
func (b *Buffer) FillRect(x0, y0, x1, y1 int, c Color) {
	x0, y0, x1, y1, ok := b.Clip(x0, y0, x1, y1)
	if !ok {
		return
	}
	for y := y0; y < y1; y++ {
		row := b.Pix[y*b.Width : (y+1)*b.Width]
		for x := x0; x < x1; x++ {
			row[x] = uint32(Over(Color(row[x]), c))
		}
	}
}

// StrokeRect replaces the one-pixel border of the inclusive box
// (x0,y0)-(x1,y1) with c. Only the part of the border inside the buffer is
// visited.
func (b *Buffer) StrokeRect(x0, y0, x1, y1 int, c Color) {
	if x1 < x0 || y1 < y0 {
		return
	}
	for x := max(x0, 0); x <= min(x1, b.Width-1); x++ {
		b.Set(x, y0, c)
		b.Set(x, y1, c)
	}
	for y := max(y0, 0); y <= min(y1, b.Height-1); y++ {
		b.Set(x0, y, c)
		b.Set(x1, y, c)
	}
}

// Image copies the buffer into a new NRGBA image.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := Color(b.Pix[y*b.Width+x])
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R()
			img.Pix[i+1] = c.G()
			img.Pix[i+2] = c.B()
			img.Pix[i+3] = c.A()
		}
	}
	return img
}

// PackARGB encodes pixels as big-endian ARGB words, four bytes each.
func PackARGB(pix []uint32) []byte {
	out := make([]byte, 4*len(pix))
	for i, p := range pix {
		binary.BigEndian.PutUint32(out[4*i:], p)
	}
	return out
}

// UnpackARGB decodes big-endian ARGB words. A trailing partial word is
// dropped.
func UnpackARGB(b []byte) []uint32 {
	pix := make([]uint32, len(b)/4)
	for i := range pix {
		pix[i] = binary.BigEndian.Uint32(b[4*i:])
	}
	return pix
}
