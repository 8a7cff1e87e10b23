package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SlideBoard/internal/raster"
	"SlideBoard/internal/state"
)

// BoardWidget shows a scene, selection overlay included, and feeds pointer
// input to an Editor. One scene pixel is one fyne unit.
type BoardWidget struct {
	widget.BaseWidget
	editor   *Editor
	raster   *canvas.Raster
	minSize  fyne.Size
	lastDrag fyne.Position

	// OnChanged runs on the fyne goroutine after the scene changes.
	OnChanged func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(ed *Editor, width, height int) *BoardWidget {
	b := &BoardWidget{
		editor:  ed,
		minSize: fyne.NewSize(float32(width), float32(height)),
	}
	b.raster = canvas.NewRaster(b.draw)
	b.raster.SetMinSize(b.minSize)
	b.ExtendBaseWidget(b)

	ed.Shared().OnChange(func() {
		fyne.Do(func() {
			b.raster.Refresh()
			if b.OnChanged != nil {
				b.OnChanged()
			}
		})
	})
	return b
}

// draw renders the scene at the widget's logical size; fyne scales the
// image to the w×h device pixels it asks for.
func (b *BoardWidget) draw(w, h int) image.Image {
	size := b.Size()
	lw, lh := int(size.Width), int(size.Height)
	if lw <= 0 || lh <= 0 {
		lw, lh = w, h
	}
	buf := raster.NewBuffer(max(lw, 1), max(lh, 1))
	b.editor.Shared().Do(func(s *state.Scene) { s.RenderTo(buf) })
	return buf.Image()
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	additive := e.Modifier&fyne.KeyModifierShift != 0
	b.lastDrag = e.Position
	b.editor.Press(float64(e.Position.X), float64(e.Position.Y), additive)
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.editor.Release(float64(e.Position.X), float64(e.Position.Y))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.lastDrag = e.Position
	b.editor.DragTo(float64(e.Position.X), float64(e.Position.Y))
}

func (b *BoardWidget) DragEnd() {
	b.editor.Release(float64(b.lastDrag.X), float64(b.lastDrag.Y))
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

// TypedKey handles the board's keyboard shortcuts: Delete and Backspace
// remove the selection, arrows nudge it by one pixel.
func (b *BoardWidget) TypedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		b.editor.DeleteSelection()
	case fyne.KeyLeft:
		b.editor.Nudge(-1, 0)
	case fyne.KeyRight:
		b.editor.Nudge(1, 0)
	case fyne.KeyUp:
		b.editor.Nudge(0, -1)
	case fyne.KeyDown:
		b.editor.Nudge(0, 1)
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: b}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.raster}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size { return r.board.minSize }
func (r *boardWidgetRenderer) Refresh()           { r.board.raster.Refresh() }
func (r *boardWidgetRenderer) Destroy()           {}
