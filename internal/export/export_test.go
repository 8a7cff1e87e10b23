package export

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SlideBoard/internal/glyph"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/state"
)

func sampleScene() *state.Scene {
	opts := state.DefaultOptions()
	opts.Font = glyph.Default()
	s := state.New(opts)
	s.AddRectangle(10, 10, 40, 20, 0xFFFF0000)
	s.AddEllipse(60, 10, 30, 30, 0x800000FF)
	s.AddLine(0, 90, 100, 90, 0xFF00FF00, 3)
	s.AddText(10, 50, "Grüße", 0xFFFFFFFF, 16)
	s.AddImage(70, 60, 20, 20, []uint32{0xFFFF0000, 0xFF00FF00, 0xFF0000FF, 0x00000000}, 2, 2)
	s.Select(s.UIDAt(0), false)
	return s
}

func TestPNG(t *testing.T) {
	s := sampleScene()
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, s, 100, 100))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	got := raster.FromColor(img.At(20, 20))
	assert.Equal(t, raster.Color(0xFFFF0000), got)

	// The selection outline is not exported.
	assert.Equal(t, raster.Color(0xFFFF0000), raster.FromColor(img.At(10, 10)))
}

func TestPNGBadSize(t *testing.T) {
	tests := map[string][2]int{
		"zero width":  {0, 10},
		"negative":    {10, -1},
		"too wide":    {MaxSide + 1, 10},
		"huge":        {MaxSide << 10, MaxSide << 10},
		"overflowing": {math.MaxInt, 4},
	}
	for name, size := range tests {
		t.Run(name, func(t *testing.T) {
			err := PNG(&bytes.Buffer{}, sampleScene(), size[0], size[1])
			assert.ErrorIs(t, err, ErrBadSize)
		})
	}

	err := Thumbnail(&bytes.Buffer{}, sampleScene(), MaxSide<<10, 10, 64)
	assert.ErrorIs(t, err, ErrBadSize)
}

func TestThumbnail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Thumbnail(&buf, sampleScene(), 200, 100, 50))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 200, 100, 50},
		{200, 100, 50, 50, 25},
		{100, 400, 100, 25, 100},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := fit(tt.w, tt.h, tt.max)
		assert.Equal(t, []int{tt.wantW, tt.wantH}, []int{w, h})
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sampleScene(), PDFOptions{Width: 100, Height: 100, Title: "deck"}))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out[len(out)-8:]), "%%EOF")
	assert.Contains(t, string(out), "/Helvetica")

	err := PDF(&bytes.Buffer{}, sampleScene(), PDFOptions{Width: 100})
	assert.ErrorIs(t, err, ErrBadSize)
}
