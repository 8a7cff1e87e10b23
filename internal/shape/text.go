package shape

import (
	"SlideBoard/internal/glyph"
	"SlideBoard/internal/raster"
)

// DefaultFontSize is used when a text shape is created without a size.
const DefaultFontSize = 24

// Size of a text box before any font has been loaded.
const (
	unlaidWidth  = 100
	unlaidHeight = 30
)

// Text is a single line of glyphs laid out left to right. Its bounding box
// follows the text, the size and the font, and is recomputed whenever any of
// them changes.
type Text struct {
	base
	paint
	text string
	size float64
	font *glyph.Font
}

// NewText creates a text shape with its top-left corner at (x, y). The font
// may be nil; the box is then a fixed placeholder until SetFont is called.
func NewText(x, y float64, s string, c raster.Color, size float64, f *glyph.Font) *Text {
	if size <= 0 {
		size = DefaultFontSize
	}
	t := &Text{
		base:  base{rect: Rect{X: x, Y: y, W: unlaidWidth, H: unlaidHeight}, pad: DefaultTextPadding},
		paint: paint{color: c},
		text:  s,
		size:  size,
		font:  f,
	}
	t.layout()
	return t
}

func (*Text) Kind() Kind   { return KindText }
func (*Text) Name() string { return KindText.String() }

func (t *Text) Text() string { return t.text }

func (t *Text) SetText(s string) {
	t.text = s
	t.layout()
}

func (t *Text) FontSize() float64 { return t.size }

// SetFontSize ignores non-positive sizes.
func (t *Text) SetFontSize(size float64) {
	if size <= 0 {
		return
	}
	t.size = size
	t.layout()
}

// SetFont switches the font the text is measured and drawn with.
func (t *Text) SetFont(f *glyph.Font) {
	t.font = f
	t.layout()
}

// layout recomputes width and height from the glyph advances. The pen moves
// in whole pixels, so each advance is truncated before it is summed.
func (t *Text) layout() {
	if t.font == nil {
		return
	}
	scale := t.font.ScaleForPixelHeight(t.size)
	vm := t.font.VMetrics()

	var pen int
	for _, r := range t.text {
		pen += int(float64(t.font.Advance(r)) * scale)
	}
	t.rect.W = float64(pen)
	t.rect.H = float64(vm.Ascent-vm.Descent) * scale
}

func (t *Text) Draw(dst *raster.Buffer) {
	if t.font == nil {
		return
	}
	scale := t.font.ScaleForPixelHeight(t.size)
	vm := t.font.VMetrics()
	x0, y0, _, _ := t.rect.Pixels()
	baseline := y0 + int(float64(vm.Ascent)*scale)
	pen := x0
	ink := uint32(t.color.A())

	for _, r := range t.text {
		if bm := t.font.Glyph(r, scale); bm != nil {
			ox, oy := pen+bm.Bounds.Min.X, baseline+bm.Bounds.Min.Y
			w, h := bm.Bounds.Dx(), bm.Bounds.Dy()
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					cov := uint32(bm.At(x, y))
					if cov == 0 {
						continue
					}
					a := uint8((cov*ink + 127) / 255)
					dst.Blend(ox+x, oy+y, t.color.WithAlpha(a))
				}
			}
		}
		pen += int(float64(t.font.Advance(r)) * scale)
	}
}
