package shape

import (
	"math"

	"SlideBoard/internal/raster"
)

// Line is a straight segment of a given thickness. Its bounding box is
// derived from the endpoints and only serves group bounds and handles; hit
// testing measures distance to the segment.
type Line struct {
	base
	paint
	x1, y1, x2, y2 float64
	thickness      float64
}

// NewLine creates a segment from (x1, y1) to (x2, y2).
func NewLine(x1, y1, x2, y2 float64, c raster.Color, thickness float64) *Line {
	l := &Line{
		base:      base{pad: DefaultLinePadding},
		paint:     paint{color: c},
		x1:        x1,
		y1:        y1,
		x2:        x2,
		y2:        y2,
		thickness: thickness,
	}
	l.rect = l.derived()
	return l
}

func (*Line) Kind() Kind   { return KindLine }
func (*Line) Name() string { return KindLine.String() }

// Endpoints returns the segment's true endpoints.
func (l *Line) Endpoints() (x1, y1, x2, y2 float64) {
	return l.x1, l.y1, l.x2, l.y2
}

// Thickness is the stroke width in pixels.
func (l *Line) Thickness() float64 { return l.thickness }

func (l *Line) derived() Rect {
	return Rect{
		X: math.Min(l.x1, l.x2),
		Y: math.Min(l.y1, l.y2),
		W: math.Abs(l.x2 - l.x1),
		H: math.Abs(l.y2 - l.y1),
	}
}

func (l *Line) Move(dx, dy float64) {
	l.base.Move(dx, dy)
	l.x1 += dx
	l.y1 += dy
	l.x2 += dx
	l.y2 += dy
}

// SetRect stretches the segment into r. Endpoints keep their relative
// position inside the box; along an axis where the segment had no extent the
// first endpoint goes to the near edge and the second to the far one.
func (l *Line) SetRect(r Rect) {
	old := l.derived()
	l.x1 = remap(l.x1, old.X, old.W, r.X, r.W, true)
	l.x2 = remap(l.x2, old.X, old.W, r.X, r.W, false)
	l.y1 = remap(l.y1, old.Y, old.H, r.Y, r.H, true)
	l.y2 = remap(l.y2, old.Y, old.H, r.Y, r.H, false)
	l.rect = r
}

func remap(v, oldMin, oldSize, newMin, newSize float64, first bool) float64 {
	if oldSize == 0 {
		if first {
			return newMin
		}
		return newMin + newSize
	}
	return newMin + (v-oldMin)*newSize/oldSize
}

// Contains projects the point onto the segment and accepts it within half
// the thickness plus the hit padding.
func (l *Line) Contains(px, py float64) bool {
	dx, dy := l.x2-l.x1, l.y2-l.y1
	var t float64
	if lenSq := dx*dx + dy*dy; lenSq > 0 {
		t = ((px-l.x1)*dx + (py-l.y1)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	projX, projY := l.x1+t*dx, l.y1+t*dy
	return math.Hypot(px-projX, py-projY) <= l.thickness/2+l.pad
}

// maxStroke caps the drawn thickness of a line.
const maxStroke = 1024

// Draw steps along the segment with Bresenham's algorithm and stamps a
// thickness×thickness block at every step. The segment is first clipped to
// the buffer grown by the stamp size, so only steps that can touch a pixel
// are visited.
func (l *Line) Draw(dst *raster.Buffer) {
	th := math.Min(l.thickness, maxStroke)
	t := 1
	if th >= 1 {
		t = int(math.Round(th))
	}
	lo, hi := -(t-1)/2, t/2

	m := float64(t + 1)
	fx1, fy1, fx2, fy2, ok := clipSegment(
		math.Floor(l.x1), math.Floor(l.y1), math.Floor(l.x2), math.Floor(l.y2),
		-m, -m, float64(dst.Width)+m, float64(dst.Height)+m)
	if !ok {
		return
	}

	x, y := int(math.Round(fx1)), int(math.Round(fy1))
	x2, y2 := int(math.Round(fx2)), int(math.Round(fy2))
	dx, dy := abs(x2-x), abs(y2-y)
	sx, sy := 1, 1
	if x > x2 {
		sx = -1
	}
	if y > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		dst.FillRect(x+lo, y+lo, x+hi+1, y+hi+1, l.color)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// clipSegment cuts (x0,y0)-(x1,y1) to the box [minX,maxX]×[minY,maxY] using
// the Liang–Barsky parametric test. ok is false when no part of the segment
// is inside or an endpoint is not finite. Endpoints already inside come back
// unchanged.
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	for _, v := range [...]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := x1-x0, y1-y0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - minX, maxX - x0, y0 - minY, maxY - y0}
	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	cx0, cy0, cx1, cy1 = x0, y0, x1, y1
	if t0 > 0 {
		cx0, cy0 = x0+t0*dx, y0+t0*dy
	}
	if t1 < 1 {
		cx1, cy1 = x0+t1*dx, y0+t1*dy
	}
	return cx0, cy0, cx1, cy1, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
