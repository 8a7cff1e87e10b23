package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseErrors(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrEmptyFontData)

	_, err = Parse([]byte("definitely not a font"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyFontData)
}

func TestVMetrics(t *testing.T) {
	f, err := Parse(goregular.TTF)
	require.NoError(t, err)

	vm := f.VMetrics()
	assert.Positive(t, vm.Ascent)
	assert.Negative(t, vm.Descent)
	assert.GreaterOrEqual(t, vm.LineGap, 0)
	assert.NotEmpty(t, f.Name())
}

func TestScaleForPixelHeight(t *testing.T) {
	f := Default()
	vm := f.VMetrics()
	scale := f.ScaleForPixelHeight(24)
	assert.InDelta(t, 24.0, float64(vm.Ascent-vm.Descent)*scale, 1e-9)
}

func TestAdvance(t *testing.T) {
	f := Default()
	assert.Positive(t, f.Advance('M'))
	assert.Greater(t, f.Advance('M'), f.Advance('i'))
	assert.Positive(t, f.Advance(' '))
}

func TestGlyphCoverage(t *testing.T) {
	f := Default()
	scale := f.ScaleForPixelHeight(32)

	bm := f.Glyph('H', scale)
	require.NotNil(t, bm)
	assert.Negative(t, bm.Bounds.Min.Y, "glyph sits above the baseline")
	assert.Len(t, bm.Alpha, bm.Bounds.Dx()*bm.Bounds.Dy())

	var inked int
	for _, a := range bm.Alpha {
		if a > 0 {
			inked++
		}
	}
	assert.Positive(t, inked)

	again := f.Glyph('H', scale)
	assert.Same(t, bm, again, "bitmaps are cached per size")
}

func TestGlyphWithoutInk(t *testing.T) {
	f := Default()
	bm := f.Glyph(' ', f.ScaleForPixelHeight(24))
	if bm != nil {
		for _, a := range bm.Alpha {
			assert.Zero(t, a)
		}
	}
	assert.Nil(t, f.Glyph('A', 0))
}
