package shape

import (
	"SlideBoard/internal/raster"
)

// Ellipse is a filled ellipse inscribed in its bounding box.
type Ellipse struct {
	base
	paint
}

// NewEllipse creates an ellipse inscribed in r.
func NewEllipse(r Rect, c raster.Color) *Ellipse {
	return &Ellipse{
		base:  base{rect: r, pad: DefaultEllipsePadding},
		paint: paint{color: c},
	}
}

func (*Ellipse) Kind() Kind   { return KindEllipse }
func (*Ellipse) Name() string { return KindEllipse.String() }

func (s *Ellipse) radii() (cx, cy, rx, ry float64) {
	r := s.rect
	return r.X + r.W/2, r.Y + r.H/2, r.W / 2, r.H / 2
}

// Contains tests the ellipse equation with both radii inflated by the hit
// padding. Degenerate ellipses are never hit.
func (s *Ellipse) Contains(px, py float64) bool {
	cx, cy, rx, ry := s.radii()
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (px - cx) / (rx + s.pad)
	dy := (py - cy) / (ry + s.pad)
	return dx*dx+dy*dy <= 1
}

func (s *Ellipse) Draw(dst *raster.Buffer) {
	cx, cy, rx, ry := s.radii()
	if rx <= 0 || ry <= 0 {
		return
	}
	x0, y0, x1, y1 := s.rect.Pixels()
	x0, y0, x1, y1, ok := dst.Clip(x0, y0, x1, y1)
	if !ok {
		return
	}
	for y := y0; y < y1; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := x0; x < x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				dst.Blend(x, y, s.color)
			}
		}
	}
}
