// Package state is the document core of the editor: the ordered shapes of a
// canvas, their selection, hit testing and compositing.
//
// A Scene is single-threaded. Callers on several goroutines serialize
// through Shared.
package state

import (
	"slices"

	"SlideBoard/internal/glyph"
	"SlideBoard/internal/logging"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/shape"
)

// Scene owns every shape of a canvas. Shapes are addressed by uid only;
// paint order is insertion order.
type Scene struct {
	opts      Options
	shapes    []entry
	clock     uidClock
	selection []UID
	font      *glyph.Font
}

// New creates an empty scene.
func New(opts Options) *Scene {
	return &Scene{
		opts:  opts,
		clock: newUIDClock(),
		font:  opts.Font,
	}
}

// Options returns the options the scene was created with.
func (s *Scene) Options() Options { return s.opts }

// Clear drops every shape and the selection and restarts uids at 1. The
// font is kept.
func (s *Scene) Clear() {
	s.shapes = nil
	s.selection = nil
	s.clock.Reset()
	logging.Logger().Debug("scene: cleared")
}

// Add takes ownership of sh, appends it on top of the paint order and
// returns its new uid.
func (s *Scene) Add(sh shape.Shape) UID {
	sh.SetHitPadding(s.opts.Padding.For(sh.Kind()))
	if f, ok := sh.(shape.Fonted); ok && s.font != nil {
		f.SetFont(s.font)
	}
	uid := s.clock.Tick()
	s.shapes = append(s.shapes, entry{uid: uid, shape: sh})
	logging.Logger().Debug("scene: shape added", "uid", uid, "kind", sh.Kind())
	return uid
}

// AddRectangle adds a filled rectangle.
func (s *Scene) AddRectangle(x, y, w, h float64, c raster.Color) UID {
	return s.Add(shape.NewRectangle(shape.Rect{X: x, Y: y, W: w, H: h}, c))
}

// AddEllipse adds a filled ellipse inscribed in the given box.
func (s *Scene) AddEllipse(x, y, w, h float64, c raster.Color) UID {
	return s.Add(shape.NewEllipse(shape.Rect{X: x, Y: y, W: w, H: h}, c))
}

// AddLine adds a segment from (x1, y1) to (x2, y2).
func (s *Scene) AddLine(x1, y1, x2, y2 float64, c raster.Color, thickness float64) UID {
	return s.Add(shape.NewLine(x1, y1, x2, y2, c, thickness))
}

// AddText adds a line of text with its top-left corner at (x, y).
func (s *Scene) AddText(x, y float64, text string, c raster.Color, size float64) UID {
	return s.Add(shape.NewText(x, y, text, c, size, s.font))
}

// AddImage adds an imgW×imgH ARGB snapshot drawn into the given box. The
// pixels are copied.
func (s *Scene) AddImage(x, y, w, h float64, pixels []uint32, imgW, imgH int) UID {
	return s.Add(shape.NewImage(shape.Rect{X: x, Y: y, W: w, H: h}, pixels, imgW, imgH))
}

// Remove deletes a shape and drops it from the selection.
func (s *Scene) Remove(uid UID) {
	i := s.index(uid)
	if i < 0 {
		return
	}
	s.shapes = slices.Delete(s.shapes, i, i+1)
	s.Deselect(uid)
	logging.Logger().Debug("scene: shape removed", "uid", uid)
}

func (s *Scene) index(uid UID) int {
	for i, e := range s.shapes {
		if e.uid == uid {
			return i
		}
	}
	return -1
}

// Lookup returns the shape with the given uid. The result must not be kept
// beyond the current call; address the shape by uid afterwards.
func (s *Scene) Lookup(uid UID) (shape.Shape, bool) {
	if i := s.index(uid); i >= 0 {
		return s.shapes[i].shape, true
	}
	return nil, false
}

// Count is the number of shapes.
func (s *Scene) Count() int { return len(s.shapes) }

// UIDAt returns the uid at a paint-order index, or NoUID.
func (s *Scene) UIDAt(i int) UID {
	if i < 0 || i >= len(s.shapes) {
		return NoUID
	}
	return s.shapes[i].uid
}

// NameAt returns the display name at a paint-order index, or "".
func (s *Scene) NameAt(i int) string {
	if i < 0 || i >= len(s.shapes) {
		return ""
	}
	return s.shapes[i].shape.Name()
}

// KindAt returns the kind at a paint-order index, or NoKind.
func (s *Scene) KindAt(i int) shape.Kind {
	if i < 0 || i >= len(s.shapes) {
		return NoKind
	}
	return s.shapes[i].shape.Kind()
}

// Kind returns the kind of a shape.
func (s *Scene) Kind(uid UID) (shape.Kind, bool) {
	sh, ok := s.Lookup(uid)
	if !ok {
		return NoKind, false
	}
	return sh.Kind(), true
}

// Bounds returns a shape's bounding box.
func (s *Scene) Bounds(uid UID) (shape.Rect, bool) {
	sh, ok := s.Lookup(uid)
	if !ok {
		return shape.Rect{}, false
	}
	return sh.Bounds(), true
}

func (s *Scene) SetRect(uid UID, r shape.Rect) {
	if sh, ok := s.Lookup(uid); ok {
		sh.SetRect(r)
	}
}

func (s *Scene) Move(uid UID, dx, dy float64) {
	if sh, ok := s.Lookup(uid); ok {
		sh.Move(dx, dy)
	}
}

// Color returns a shape's color: 0 when the uid is absent, opaque white for
// kinds without a color.
func (s *Scene) Color(uid UID) raster.Color {
	sh, ok := s.Lookup(uid)
	if !ok {
		return 0
	}
	if c, ok := sh.(shape.Colorable); ok {
		return c.Color()
	}
	return raster.White
}

func (s *Scene) SetColor(uid UID, c raster.Color) {
	if sh, ok := s.Lookup(uid); ok {
		if cs, ok := sh.(shape.Colorable); ok {
			cs.SetColor(c)
		}
	}
}

// Text returns a shape's text, or "" when it has none.
func (s *Scene) Text(uid UID) string {
	sh, _ := s.Lookup(uid)
	if t, ok := sh.(shape.TextEditable); ok {
		return t.Text()
	}
	return ""
}

func (s *Scene) SetText(uid UID, text string) {
	sh, _ := s.Lookup(uid)
	if t, ok := sh.(shape.TextEditable); ok {
		t.SetText(text)
	}
}

// FontSize returns -1 when the uid is absent and 0 for kinds without a
// font size.
func (s *Scene) FontSize(uid UID) float64 {
	sh, ok := s.Lookup(uid)
	if !ok {
		return -1
	}
	if f, ok := sh.(shape.FontSized); ok {
		return f.FontSize()
	}
	return 0
}

func (s *Scene) SetFontSize(uid UID, size float64) {
	sh, _ := s.Lookup(uid)
	if f, ok := sh.(shape.FontSized); ok {
		f.SetFontSize(size)
	}
}

// Font is the font text shapes are laid out with. It may be nil.
func (s *Scene) Font() *glyph.Font { return s.font }

// SetFont switches every text shape, present and future, to f and lays
// them out again.
func (s *Scene) SetFont(f *glyph.Font) {
	s.font = f
	for _, e := range s.shapes {
		if t, ok := e.shape.(shape.Fonted); ok {
			t.SetFont(f)
		}
	}
}

// LoadFont parses font bytes and installs them with SetFont. On error the
// previous font stays in place.
func (s *Scene) LoadFont(data []byte) error {
	f, err := glyph.Parse(data)
	if err != nil {
		logging.Logger().Warn("scene: font rejected", "bytes", len(data), "err", err)
		return err
	}
	s.SetFont(f)
	logging.Logger().Info("scene: font loaded", "name", f.Name())
	return nil
}
