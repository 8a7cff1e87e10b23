package state

import (
	"math"

	"SlideBoard/internal/raster"
	"SlideBoard/internal/shape"
)

// Render composites the scene into a caller-owned row-major ARGB buffer of
// width×height pixels. The buffer is not retained.
func (s *Scene) Render(pix []uint32, width, height int) {
	s.RenderTo(raster.Wrap(pix, width, height))
}

// RenderTo paints the background, every shape in paint order and then the
// selection overlay.
func (s *Scene) RenderTo(dst *raster.Buffer) {
	s.RenderShapes(dst)
	s.drawOverlay(dst)
}

// RenderShapes is RenderTo without the selection overlay. The background is
// painted fully opaque whatever its alpha, so every output pixel is opaque.
func (s *Scene) RenderShapes(dst *raster.Buffer) {
	dst.Fill(s.opts.Background.WithAlpha(255))
	for _, e := range s.shapes {
		e.shape.Draw(dst)
	}
}

func (s *Scene) drawOverlay(dst *raster.Buffer) {
	for _, uid := range s.selection {
		if b, ok := s.Bounds(uid); ok {
			outline(dst, b, s.opts.Highlight)
		}
	}

	switch {
	case len(s.selection) == 1:
		if b, ok := s.Bounds(s.selection[0]); ok {
			s.drawHandles(dst, b)
		}
	case len(s.selection) > 1:
		if u, ok := s.SelectionBounds(); ok {
			outline(dst, u.Inflate(s.opts.GroupMargin), s.opts.Group)
		}
	}
}

// outline strokes the last pixel row and column inside the box, so the
// stroke lands on the pixels the shape itself covers.
func outline(dst *raster.Buffer, r shape.Rect, c raster.Color) {
	x0, y0, x1, y1 := r.Pixels()
	dst.StrokeRect(x0, y0, max(x1-1, x0), max(y1-1, y0), c)
}

func (s *Scene) drawHandles(dst *raster.Buffer, b shape.Rect) {
	hs := s.opts.HandleHalf
	for h := range Handle(handleCount) {
		ax, ay := h.Anchor(b)
		cx, cy := int(math.Floor(ax)), int(math.Floor(ay))
		dst.FillRect(cx-hs, cy-hs, cx+hs+1, cy+hs+1, s.opts.HandleFill)
		dst.StrokeRect(cx-hs, cy-hs, cx+hs, cy+hs, s.opts.Highlight)
	}
}
