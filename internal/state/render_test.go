package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SlideBoard/internal/raster"
)

const (
	background raster.Color = 0xFF252526
	highlight  raster.Color = 0xFF007AFF
	group      raster.Color = 0xFFFF9500
)

func render(s *Scene) *raster.Buffer {
	dst := raster.NewBuffer(100, 100)
	s.RenderTo(dst)
	return dst
}

func TestRenderEmpty(t *testing.T) {
	s := newScene(t)
	pix := make([]uint32, 20*10)
	s.Render(pix, 20, 10)
	for i, p := range pix {
		assert.Equal(t, uint32(background), p, "pixel %d", i)
	}
}

func TestRenderShortBuffer(t *testing.T) {
	s := newScene(t)
	pix := make([]uint32, 150)
	s.Render(pix, 100, 2)
	assert.Equal(t, uint32(background), pix[99])
	assert.Zero(t, pix[100], "rows the slice cannot hold are skipped")
}

func TestRenderPaintOrderAndBlend(t *testing.T) {
	s := newScene(t)
	s.AddRectangle(0, 0, 50, 50, red)
	s.AddRectangle(25, 25, 50, 50, green)
	s.AddRectangle(80, 80, 10, 10, 0x80FFFFFF)

	dst := render(s)
	assert.Equal(t, red, dst.At(10, 10))
	assert.Equal(t, green, dst.At(30, 30), "later shapes paint on top")
	assert.Equal(t, background, dst.At(95, 95))
	assert.Equal(t, raster.Color(0xFF929293), dst.At(85, 85))
}

func TestRenderSingleSelectionHandles(t *testing.T) {
	s := newScene(t)
	a := s.AddRectangle(10, 10, 20, 20, red)
	s.Select(a, false)

	dst := render(s)
	assert.Equal(t, highlight, dst.At(15, 10), "outline top edge")
	assert.Equal(t, highlight, dst.At(29, 15), "outline right edge")
	assert.Equal(t, red, dst.At(20, 20))

	// Top-left handle spans 7..13 with a highlight border.
	assert.Equal(t, highlight, dst.At(7, 7))
	assert.Equal(t, highlight, dst.At(13, 13))
	assert.Equal(t, raster.White, dst.At(10, 10))
	assert.Equal(t, raster.White, dst.At(8, 8))

	// Right-mid handle sits on (30, 20).
	assert.Equal(t, raster.White, dst.At(30, 20))
	assert.Equal(t, highlight, dst.At(27, 20))

	assert.Equal(t, background, dst.At(6, 6), "no group box")
}

func TestRenderScenarioD(t *testing.T) {
	s := newScene(t)
	a := s.AddRectangle(10, 10, 20, 20, red)
	b := s.AddRectangle(50, 50, 20, 20, green)
	s.Select(a, false)
	s.Select(b, true)

	dst := render(s)

	for _, p := range [][2]int{{10, 10}, {29, 10}, {10, 29}, {29, 29}, {50, 50}, {69, 69}, {60, 50}} {
		assert.Equal(t, highlight, dst.At(p[0], p[1]), "outline at %v", p)
	}
	assert.Equal(t, red, dst.At(20, 20))
	assert.Equal(t, green, dst.At(60, 60))

	// Union (10,10)-(70,70) inflated by 4.
	for _, p := range [][2]int{{6, 6}, {73, 73}, {6, 40}, {40, 73}, {73, 6}} {
		assert.Equal(t, group, dst.At(p[0], p[1]), "group box at %v", p)
	}
	assert.Equal(t, background, dst.At(40, 40))

	// No handle squares anywhere.
	assert.Equal(t, background, dst.At(8, 8))
	assert.Equal(t, red, dst.At(12, 12))
	assert.Equal(t, background, dst.At(31, 20))
	assert.Equal(t, background, dst.At(47, 47))
}

func TestRenderHugeShapesStaysInsideBuffer(t *testing.T) {
	s := newScene(t)
	rect := s.AddRectangle(0, 0, 1e9, 1e9, red)
	s.AddLine(0, 99, 1e9, 99, green, 1)
	s.Select(rect, false)

	done := make(chan *raster.Buffer)
	go func() { done <- render(s) }()

	var dst *raster.Buffer
	select {
	case dst = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("render did not finish")
	}
	assert.Equal(t, highlight, dst.At(50, 0), "outline top edge")
	assert.Equal(t, highlight, dst.At(0, 50), "outline left edge")
	assert.Equal(t, red, dst.At(50, 50))
	assert.Equal(t, green, dst.At(50, 99))
	assert.Equal(t, raster.White, dst.At(1, 1), "top-left handle")
}

func TestRenderBackgroundIsOpaque(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = 0x00112233
	s := New(opts)
	s.AddRectangle(0, 0, 10, 10, 0x80FFFFFF)

	dst := render(s)
	assert.Equal(t, raster.Color(0xFF112233), dst.At(50, 50))
	for _, p := range dst.Pix {
		require.Equal(t, uint8(255), raster.Color(p).A())
	}
}
