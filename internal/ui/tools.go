package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"SlideBoard/internal/raster"
)

// palette is the swatch row of the toolbar.
var palette = []raster.Color{
	0xFF000000,
	0xFFFFFFFF,
	0xFFFF0000,
	0xFF00B050,
	0xFF4472C4,
	0xFFFFC000,
	0xFFED7D31,
	0xFFA5A5A5,
}

type colorSwatch struct {
	widget.BaseWidget
	Color    raster.Color
	OnTapped func(raster.Color)
}

func newColorSwatch(c raster.Color, tapped func(raster.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color.NRGBA())
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the tool picker, palette and text controls for ed.
func NewToolbar(ed *Editor) fyne.CanvasObject {
	names := make([]string, 0, 5)
	for t := ToolSelect; t <= ToolText; t++ {
		names = append(names, t.String())
	}
	tools := widget.NewRadioGroup(names, func(name string) {
		for t := ToolSelect; t <= ToolText; t++ {
			if t.String() == name {
				ed.Tool = t
			}
		}
	})
	tools.Horizontal = true
	tools.Required = true
	tools.SetSelected(ed.Tool.String())

	swatches := container.NewHBox()
	for _, c := range palette {
		swatches.Add(newColorSwatch(c, ed.SetColor))
	}

	text := widget.NewEntry()
	text.SetPlaceHolder("Text")
	text.SetText(ed.Text)
	text.OnSubmitted = ed.SetText
	textBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(160, 36)), text)

	size := widget.NewEntry()
	size.SetText(strconv.FormatFloat(ed.FontSize, 'f', -1, 64))
	size.Validator = func(s string) error {
		_, err := strconv.ParseFloat(s, 64)
		return err
	}
	size.OnSubmitted = func(s string) {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			ed.SetFontSize(v)
		}
	}
	sizeBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(60, 36)), size)

	thickness := widget.NewSlider(1, 20)
	thickness.SetValue(ed.Thickness)
	thickness.OnChanged = func(v float64) { ed.Thickness = v }
	thicknessBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 36)), thickness)

	return container.NewHBox(
		tools,
		widget.NewSeparator(),
		swatches,
		widget.NewSeparator(),
		widget.NewLabel("Text:"),
		textBox,
		widget.NewLabel("Size:"),
		sizeBox,
		widget.NewLabel("Line:"),
		thicknessBox,
		layout.NewSpacer(),
	)
}
