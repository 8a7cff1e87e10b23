package ui

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"SlideBoard/internal/document"
	"SlideBoard/internal/logging"
	"SlideBoard/internal/state"
)

// AppOptions configure the viewer window.
type AppOptions struct {
	Title  string
	Width  int
	Height int

	// ShareLink, when set, is shown in the status bar so other sessions
	// can join.
	ShareLink string
}

// RunApp opens the editor window and blocks until it is closed.
func RunApp(ed *Editor, opts AppOptions) {
	a := app.NewWithID("dev.slideboard.viewer")
	win := a.NewWindow(opts.Title)
	win.Resize(fyne.NewSize(float32(opts.Width)+40, float32(opts.Height)+140))

	board := NewBoardWidget(ed, opts.Width, opts.Height)
	status := widget.NewLabel(ed.Status())
	board.OnChanged = func() { status.SetText(ed.Status()) }

	footer := []fyne.CanvasObject{status}
	if opts.ShareLink != "" {
		footer = append(footer, widget.NewButton("Copy link", func() {
			win.Clipboard().SetContent(opts.ShareLink)
		}), widget.NewLabel(opts.ShareLink))
	}

	win.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", func() { showOpen(win, ed) }),
		fyne.NewMenuItem("Save...", func() { showSave(win, ed, "scene.json", opts) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() { showSave(win, ed, "scene.pdf", opts) }),
		fyne.NewMenuItem("Export PNG...", func() { showSave(win, ed, "scene.png", opts) }),
	)))
	win.Canvas().SetOnTypedKey(board.TypedKey)

	content := container.NewBorder(
		NewToolbar(ed),
		container.NewHBox(footer...),
		nil, nil,
		container.NewScroll(board),
	)
	win.SetContent(content)
	win.ShowAndRun()
}

func showOpen(win fyne.Window, ed *Editor) {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()

		if err := openDocument(ed.Shared(), r.URI().Name(), r); err != nil {
			logging.Logger().Warn("open failed", "name", r.URI().Name(), "err", err)
			dialog.ShowError(err, win)
		}
	}, win)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json", ".pptx"}))
	fd.Show()
}

func showSave(win fyne.Window, ed *Editor, suggested string, opts AppOptions) {
	fd := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if w == nil {
			return
		}

		err = saveDocument(ed.Shared(), w.URI().Name(), w, opts.Width, opts.Height)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			logging.Logger().Warn("save failed", "name", w.URI().Name(), "err", err)
			dialog.ShowError(err, win)
		}
	}, win)
	fd.SetFileName(suggested)
	fd.Show()
}

// openDocument replaces the shared scene with the document read from r.
func openDocument(shared *state.Shared, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	shared.Update(func(s *state.Scene) { err = document.Read(name, data, s) })
	return err
}

// saveDocument writes the shared scene to w in the format name implies.
func saveDocument(shared *state.Shared, name string, w io.Writer, width, height int) error {
	var err error
	shared.Do(func(s *state.Scene) { err = document.Write(w, name, s, width, height) })
	return err
}
