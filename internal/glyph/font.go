// Package glyph is the font resource shared by every text shape of a scene.
//
// It consumes a TrueType/OpenType blob through golang.org/x/image and
// exposes exactly what text layout needs: vertical metrics and per-codepoint
// advances in font units, the scale for a pixel height, and per-codepoint
// alpha-coverage bitmaps positioned relative to the pen on the baseline.
package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Sentinel errors for the glyph package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("glyph: empty font data")

	// ErrNoVerticalExtent is returned for fonts whose ascent equals descent.
	ErrNoVerticalExtent = errors.New("glyph: font has no vertical extent")
)

// VMetrics are vertical metrics in font units. Descent is negative below
// the baseline, so ascent-descent is the full glyph height.
type VMetrics struct {
	Ascent  int
	Descent int
	LineGap int
}

// Bitmap is an alpha-coverage mask. Bounds is relative to the pen position
// on the baseline; y grows downwards, so most glyphs have Bounds.Min.Y < 0.
type Bitmap struct {
	Bounds image.Rectangle
	Alpha  []uint8
}

// At returns the coverage at (x, y) in bitmap-local coordinates.
func (b *Bitmap) At(x, y int) uint8 {
	return b.Alpha[y*b.Bounds.Dx()+x]
}

type bitmapKey struct {
	r    rune
	ppem fixed.Int26_6
}

// Font is a parsed font. It caches faces and coverage bitmaps per pixel
// size; like the scene that owns it, it is not safe for concurrent use.
type Font struct {
	name  string
	f     *opentype.Font
	upem  int
	vm    VMetrics
	buf   sfnt.Buffer
	faces map[fixed.Int26_6]font.Face
	masks map[bitmapKey]*Bitmap
}

// Parse loads a font from TrueType/OpenType bytes. The bytes are retained.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font: %w", err)
	}

	ft := &Font{
		f:     f,
		upem:  int(f.UnitsPerEm()),
		faces: make(map[fixed.Int26_6]font.Face),
		masks: make(map[bitmapKey]*Bitmap),
	}
	if name, err := f.Name(&ft.buf, sfnt.NameIDFull); err == nil {
		ft.name = name
	}

	// At ppem == unitsPerEm, 26.6 pixel values are exactly font units.
	m, err := f.Metrics(&ft.buf, ft.unitsPPEM(), font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to read metrics: %w", err)
	}
	ft.vm = VMetrics{
		Ascent:  m.Ascent.Round(),
		Descent: -m.Descent.Round(),
		LineGap: (m.Height - m.Ascent - m.Descent).Round(),
	}
	if ft.vm.Ascent == ft.vm.Descent {
		return nil, ErrNoVerticalExtent
	}
	return ft, nil
}

// Default returns the Go Regular font bundled with golang.org/x/image.
func Default() *Font {
	f, err := Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Font) unitsPPEM() fixed.Int26_6 {
	return fixed.I(f.upem)
}

// Name is the full font name, if the font carries one.
func (f *Font) Name() string { return f.name }

// VMetrics returns the font's vertical metrics in font units.
func (f *Font) VMetrics() VMetrics { return f.vm }

// ScaleForPixelHeight returns the factor that maps font units to pixels so
// that ascent-descent spans px pixels.
func (f *Font) ScaleForPixelHeight(px float64) float64 {
	return px / float64(f.vm.Ascent-f.vm.Descent)
}

// Advance returns the horizontal advance of r in font units. Codepoints the
// font lacks use the advance of its notdef glyph.
func (f *Font) Advance(r rune) int {
	idx, err := f.f.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	adv, err := f.f.GlyphAdvance(&f.buf, idx, f.unitsPPEM(), font.HintingNone)
	if err != nil {
		return 0
	}
	return adv.Round()
}

// Glyph returns the coverage bitmap of r rendered at the given scale. The
// returned bitmap is shared through the cache and must not be modified.
// A nil result means the glyph has no ink (a space, for instance).
func (f *Font) Glyph(r rune, scale float64) *Bitmap {
	ppem := fixed.Int26_6(scale * float64(f.upem) * 64)
	if ppem <= 0 {
		return nil
	}
	key := bitmapKey{r: r, ppem: ppem}
	if bm, ok := f.masks[key]; ok {
		return bm
	}

	bm := f.rasterize(r, ppem)
	f.masks[key] = bm
	return bm
}

func (f *Font) face(ppem fixed.Int26_6) font.Face {
	if face, ok := f.faces[ppem]; ok {
		return face
	}
	face, err := opentype.NewFace(f.f, &opentype.FaceOptions{
		Size:    float64(ppem) / 64,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	f.faces[ppem] = face
	return face
}

func (f *Font) rasterize(r rune, ppem fixed.Int26_6) *Bitmap {
	face := f.face(ppem)
	if face == nil {
		return nil
	}
	dr, mask, mp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok || dr.Empty() {
		return nil
	}

	// The face reuses its mask between calls, so copy the coverage out.
	bm := &Bitmap{Bounds: dr, Alpha: make([]uint8, dr.Dx()*dr.Dy())}
	for y := 0; y < dr.Dy(); y++ {
		for x := 0; x < dr.Dx(); x++ {
			a := color.AlphaModel.Convert(mask.At(mp.X+x, mp.Y+y)).(color.Alpha)
			bm.Alpha[y*dr.Dx()+x] = a.A
		}
	}
	return bm
}
