// Package shape defines the closed set of drawable kinds a scene holds.
//
// Every kind implements Shape. Attributes only some kinds carry (color,
// text, font size, font) are small capability interfaces that callers
// discover with a type assertion.
package shape

import (
	"math"

	"SlideBoard/internal/glyph"
	"SlideBoard/internal/raster"
)

// Kind identifies a shape variant. The numeric values are the codes the
// host layer list has always used.
type Kind int

const (
	KindRectangle Kind = 0
	KindText      Kind = 1
	KindImage     Kind = 2
	KindEllipse   Kind = 3
	KindLine      Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "Rectangle"
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindEllipse:
		return "Ellipse"
	case KindLine:
		return "Line"
	}
	return "Unknown"
}

// Default hit-test paddings in pixels, per kind.
const (
	DefaultRectanglePadding = 5
	DefaultEllipsePadding   = 5
	DefaultLinePadding      = 5
	DefaultTextPadding      = 20
	DefaultImagePadding     = 0
)

// Shape is the contract shared by every kind.
type Shape interface {
	Kind() Kind
	// Name is the display name shown in the host layer list.
	Name() string
	Bounds() Rect
	SetRect(r Rect)
	Move(dx, dy float64)
	// Contains reports whether a pointer at (px, py) hits the shape.
	Contains(px, py float64) bool
	// Draw blends the shape into dst. It writes pixels and nothing else.
	Draw(dst *raster.Buffer)
	// SetHitPadding overrides the kind's default hit-test padding.
	SetHitPadding(p float64)
}

// Colorable is implemented by kinds with a single fill or ink color.
type Colorable interface {
	Color() raster.Color
	SetColor(c raster.Color)
}

// TextEditable is implemented by kinds that carry a string.
type TextEditable interface {
	Text() string
	SetText(s string)
}

// FontSized is implemented by kinds that carry a font size.
type FontSized interface {
	FontSize() float64
	SetFontSize(size float64)
}

// Fonted is implemented by kinds that lay out glyphs from a font.
type Fonted interface {
	SetFont(f *glyph.Font)
}

// Rect is an axis-aligned box in canvas units.
type Rect struct {
	X, Y, W, H float64
}

// Canon returns r with non-negative width and height.
func (r Rect) Canon() Rect {
	if r.W < 0 {
		r.X, r.W = r.X+r.W, -r.W
	}
	if r.H < 0 {
		r.Y, r.H = r.Y+r.H, -r.H
	}
	return r
}

// Inflate grows r by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Union returns the smallest box holding both r and o.
func (r Rect) Union(o Rect) Rect {
	r, o = r.Canon(), o.Canon()
	minX, minY := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	maxX, maxY := math.Max(r.X+r.W, o.X+o.W), math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Contains reports whether (px, py) lies in the half-open box.
func (r Rect) Contains(px, py float64) bool {
	r = r.Canon()
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Pixels returns the half-open pixel span [x0,x1)×[y0,y1) the box covers.
func (r Rect) Pixels() (x0, y0, x1, y1 int) {
	r = r.Canon()
	return int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Floor(r.X + r.W)), int(math.Floor(r.Y + r.H))
}

// base carries the geometry every kind shares.
type base struct {
	rect Rect
	pad  float64
}

func (b *base) Bounds() Rect            { return b.rect }
func (b *base) SetRect(r Rect)          { b.rect = r }
func (b *base) SetHitPadding(p float64) { b.pad = p }

func (b *base) Move(dx, dy float64) {
	b.rect.X += dx
	b.rect.Y += dy
}

// Contains is the default padded bounding-box test.
func (b *base) Contains(px, py float64) bool {
	return b.rect.Inflate(b.pad).Contains(px, py)
}

// paint is the single color of the colorable kinds.
type paint struct {
	color raster.Color
}

func (p *paint) Color() raster.Color     { return p.color }
func (p *paint) SetColor(c raster.Color) { p.color = c }

var (
	_ Shape = (*Rectangle)(nil)
	_ Shape = (*Ellipse)(nil)
	_ Shape = (*Line)(nil)
	_ Shape = (*Text)(nil)
	_ Shape = (*Image)(nil)

	_ Colorable    = (*Rectangle)(nil)
	_ Colorable    = (*Ellipse)(nil)
	_ Colorable    = (*Line)(nil)
	_ Colorable    = (*Text)(nil)
	_ TextEditable = (*Text)(nil)
	_ FontSized    = (*Text)(nil)
	_ Fonted       = (*Text)(nil)
)
