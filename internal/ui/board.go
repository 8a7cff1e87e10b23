package ui

import (
	"fmt"

	"SlideBoard/internal/raster"
	"SlideBoard/internal/shape"
	"SlideBoard/internal/state"
)

// Tool is what a press on the board does.
type Tool int

const (
	ToolSelect Tool = iota
	ToolRectangle
	ToolEllipse
	ToolLine
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolRectangle:
		return "Rectangle"
	case ToolEllipse:
		return "Ellipse"
	case ToolLine:
		return "Line"
	case ToolText:
		return "Text"
	}
	return "Tool(?)"
}

// Size of a shape placed with a click instead of a drag.
const (
	defaultWidth  = 120
	defaultHeight = 80
)

type dragMode int

const (
	dragNone dragMode = iota
	dragMove
	dragHandle
	dragCreate
)

type dragState struct {
	mode   dragMode
	uid    state.UID
	handle state.Handle
	orig   shape.Rect
	startX float64
	startY float64
	lastX  float64
	lastY  float64
}

// Editor turns pointer and keyboard input into scene edits. It knows
// nothing about fyne, so it can be driven directly in tests.
type Editor struct {
	shared *state.Shared

	Tool      Tool
	Color     raster.Color
	Thickness float64
	FontSize  float64
	Text      string

	drag dragState
}

func NewEditor(shared *state.Shared, fontSize float64) *Editor {
	return &Editor{
		shared:    shared,
		Color:     0xFF4472C4,
		Thickness: 3,
		FontSize:  fontSize,
		Text:      "Text",
	}
}

func (e *Editor) Shared() *state.Shared { return e.shared }

// Press starts an interaction at (x, y). With the select tool a press on a
// resize handle starts a resize, a press on a shape selects it and starts a
// move, and a press on empty space clears the selection. Additive presses
// toggle shapes in and out of the selection.
func (e *Editor) Press(x, y float64, additive bool) {
	e.drag = dragState{startX: x, startY: y, lastX: x, lastY: y}
	if e.Tool != ToolSelect {
		e.drag.mode = dragCreate
		return
	}

	e.shared.Update(func(s *state.Scene) {
		if h := s.PickHandle(x, y); h != state.NoHandle {
			uid := s.PrimarySelection()
			if b, ok := s.Bounds(uid); ok {
				e.drag.mode, e.drag.uid, e.drag.handle, e.drag.orig = dragHandle, uid, h, b
				return
			}
		}

		uid := s.Pick(x, y)
		switch {
		case uid == state.NoUID:
			if !additive {
				s.ClearSelection()
			}
		case additive && s.IsSelected(uid):
			s.Deselect(uid)
		default:
			if !s.IsSelected(uid) {
				s.Select(uid, additive)
			}
			e.drag.mode = dragMove
		}
	})
}

// DragTo continues the interaction started by Press.
func (e *Editor) DragTo(x, y float64) {
	switch e.drag.mode {
	case dragMove:
		dx, dy := x-e.drag.lastX, y-e.drag.lastY
		e.shared.Update(func(s *state.Scene) { s.MoveSelection(dx, dy) })
	case dragHandle:
		r := e.drag.handle.Resize(e.drag.orig, x-e.drag.startX, y-e.drag.startY).Canon()
		e.shared.Update(func(s *state.Scene) { s.SetRect(e.drag.uid, r) })
	}
	e.drag.lastX, e.drag.lastY = x, y
}

// Release ends the interaction. For the shape tools it adds the new shape
// and selects it. Releasing twice is harmless.
func (e *Editor) Release(x, y float64) {
	d := e.drag
	e.drag = dragState{}
	if d.mode != dragCreate {
		return
	}

	e.shared.Update(func(s *state.Scene) {
		r := shape.Rect{X: d.startX, Y: d.startY, W: x - d.startX, H: y - d.startY}.Canon()
		if r.W < 1 && r.H < 1 {
			r = shape.Rect{X: d.startX, Y: d.startY, W: defaultWidth, H: defaultHeight}
		}

		var uid state.UID
		switch e.Tool {
		case ToolRectangle:
			uid = s.AddRectangle(r.X, r.Y, r.W, r.H, e.Color)
		case ToolEllipse:
			uid = s.AddEllipse(r.X, r.Y, r.W, r.H, e.Color)
		case ToolLine:
			x2, y2 := x, y
			if x2 == d.startX && y2 == d.startY {
				x2 += defaultWidth
			}
			uid = s.AddLine(d.startX, d.startY, x2, y2, e.Color, e.Thickness)
		case ToolText:
			uid = s.AddText(d.startX, d.startY, e.Text, e.Color, e.FontSize)
		default:
			return
		}
		s.Select(uid, false)
	})
}

// Nudge moves the selection by (dx, dy).
func (e *Editor) Nudge(dx, dy float64) {
	e.shared.Update(func(s *state.Scene) { s.MoveSelection(dx, dy) })
}

// DeleteSelection removes every selected shape.
func (e *Editor) DeleteSelection() {
	e.shared.Update(func(s *state.Scene) {
		for _, uid := range s.Selection() {
			s.Remove(uid)
		}
	})
}

// SetColor changes the color of new shapes and of the current selection.
func (e *Editor) SetColor(c raster.Color) {
	e.Color = c
	e.shared.Update(func(s *state.Scene) {
		for _, uid := range s.Selection() {
			s.SetColor(uid, c)
		}
	})
}

// SetText changes the text of new text shapes and of the primary
// selection.
func (e *Editor) SetText(text string) {
	e.Text = text
	e.shared.Update(func(s *state.Scene) { s.SetText(s.PrimarySelection(), text) })
}

// SetFontSize changes the size of new text shapes and of every selected
// text shape.
func (e *Editor) SetFontSize(size float64) {
	e.FontSize = size
	e.shared.Update(func(s *state.Scene) {
		for _, uid := range s.Selection() {
			s.SetFontSize(uid, size)
		}
	})
}

// Status describes the selection for the status bar.
func (e *Editor) Status() string {
	var status string
	e.shared.Do(func(s *state.Scene) {
		sel := s.Selection()
		switch len(sel) {
		case 0:
			status = plural(s.Count(), "shape")
		case 1:
			k, _ := s.Kind(sel[0])
			b, _ := s.Bounds(sel[0])
			status = k.String() + " " + formatRect(b)
		default:
			status = plural(len(sel), "shape") + " selected"
		}
	})
	return e.Tool.String() + " | " + status
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatRect(r shape.Rect) string {
	return fmt.Sprintf("at %.0f,%.0f size %.0fx%.0f", r.X, r.Y, r.W, r.H)
}
