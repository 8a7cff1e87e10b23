package shape

import (
	"SlideBoard/internal/raster"
)

// Rectangle is a filled axis-aligned box.
type Rectangle struct {
	base
	paint
}

// NewRectangle creates a rectangle filling r with c.
func NewRectangle(r Rect, c raster.Color) *Rectangle {
	return &Rectangle{
		base:  base{rect: r, pad: DefaultRectanglePadding},
		paint: paint{color: c},
	}
}

func (*Rectangle) Kind() Kind   { return KindRectangle }
func (*Rectangle) Name() string { return KindRectangle.String() }

func (s *Rectangle) Draw(dst *raster.Buffer) {
	x0, y0, x1, y1 := s.rect.Pixels()
	dst.FillRect(x0, y0, x1, y1, s.color)
}
