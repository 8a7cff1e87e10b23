package shape

import (
	"SlideBoard/internal/raster"
)

// Image is a fixed pixel snapshot scaled into its bounding box at draw
// time with nearest-neighbour sampling.
type Image struct {
	base
	pixels        []uint32
	width, height int
}

// NewImage copies a width×height ARGB snapshot. A snapshot shorter than
// width*height pixels is rejected and the image draws nothing.
func NewImage(r Rect, pixels []uint32, width, height int) *Image {
	img := &Image{base: base{rect: r, pad: DefaultImagePadding}}
	if width > 0 && height > 0 && len(pixels) >= width*height {
		img.pixels = append([]uint32(nil), pixels[:width*height]...)
		img.width, img.height = width, height
	}
	return img
}

func (*Image) Kind() Kind   { return KindImage }
func (*Image) Name() string { return KindImage.String() }

// NativeSize is the size of the source snapshot.
func (s *Image) NativeSize() (width, height int) { return s.width, s.height }

// Pixels returns a copy of the source snapshot.
func (s *Image) Pixels() []uint32 {
	return append([]uint32(nil), s.pixels...)
}

func (s *Image) Draw(dst *raster.Buffer) {
	if len(s.pixels) == 0 {
		return
	}
	ox, oy, ex, ey := s.rect.Pixels()
	dw, dh := ex-ox, ey-oy
	if dw <= 0 || dh <= 0 {
		return
	}
	x0, y0, x1, y1, ok := dst.Clip(ox, oy, ex, ey)
	if !ok {
		return
	}
	for y := y0; y < y1; y++ {
		sy := clamp((y-oy)*s.height/dh, s.height-1)
		row := s.pixels[sy*s.width : (sy+1)*s.width]
		for x := x0; x < x1; x++ {
			sx := clamp((x-ox)*s.width/dw, s.width-1)
			dst.Blend(x, y, raster.Color(row[sx]))
		}
	}
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
