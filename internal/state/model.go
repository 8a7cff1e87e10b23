package state

import (
	"SlideBoard/internal/glyph"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/shape"
)

// UID identifies a shape for the whole life of a scene.
type UID int

// NoUID is returned when no shape matches.
const NoUID UID = -1

// NoKind is returned by KindAt for indices outside the layer list.
const NoKind shape.Kind = -1

// entry is one slot of the paint-order list.
type entry struct {
	uid   UID
	shape shape.Shape
}

// HitPadding is the pointer tolerance, in pixels, of each shape kind.
type HitPadding struct {
	Rectangle float64
	Ellipse   float64
	Line      float64
	Text      float64
	Image     float64
}

// For returns the padding for kind k.
func (p HitPadding) For(k shape.Kind) float64 {
	switch k {
	case shape.KindRectangle:
		return p.Rectangle
	case shape.KindEllipse:
		return p.Ellipse
	case shape.KindLine:
		return p.Line
	case shape.KindText:
		return p.Text
	case shape.KindImage:
		return p.Image
	}
	return 0
}

// Options tune how a scene draws and hit-tests.
type Options struct {
	Background raster.Color
	// Highlight outlines selected shapes and borders their handles.
	Highlight raster.Color
	// Group outlines the union of a multi-selection.
	Group       raster.Color
	HandleFill  raster.Color
	HandleHalf  int
	HandleHit   float64
	GroupMargin float64
	Padding     HitPadding
	// Font is the initial font for text shapes. It may be nil.
	Font *glyph.Font
}

// DefaultOptions returns the stock editor look.
func DefaultOptions() Options {
	return Options{
		Background:  0xFF252526,
		Highlight:   0xFF007AFF,
		Group:       0xFFFF9500,
		HandleFill:  raster.White,
		HandleHalf:  3,
		HandleHit:   6,
		GroupMargin: 4,
		Padding: HitPadding{
			Rectangle: shape.DefaultRectanglePadding,
			Ellipse:   shape.DefaultEllipsePadding,
			Line:      shape.DefaultLinePadding,
			Text:      shape.DefaultTextPadding,
			Image:     shape.DefaultImagePadding,
		},
	}
}
