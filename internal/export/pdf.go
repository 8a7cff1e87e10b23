package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"SlideBoard/internal/logging"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/shape"
	"SlideBoard/internal/state"
)

// PDFOptions size the single page. One canvas pixel is one point.
type PDFOptions struct {
	Width, Height float64
	Title         string
}

// PDF writes the scene as a one-page vector document. Images are embedded
// as PNG; text uses the core Helvetica face.
func PDF(w io.Writer, s *state.Scene, opts PDFOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrBadSize, opts.Width, opts.Height)
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: opts.Width, Ht: opts.Height},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetCreator("SlideBoard", false)
	if opts.Title != "" {
		p.SetTitle(opts.Title, true)
	}
	p.AddPage()

	bg := s.Options().Background.WithAlpha(255)
	fill(p, bg)
	p.Rect(0, 0, opts.Width, opts.Height, "F")

	pw := &pdfWriter{p: p, tr: p.UnicodeTranslatorFromDescriptor(""), scene: s}
	for i := range s.Count() {
		sh, ok := s.Lookup(s.UIDAt(i))
		if !ok {
			continue
		}
		pw.shape(i, sh)
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	logging.Logger().Debug("export: pdf written", "shapes", s.Count())
	return nil
}

type pdfWriter struct {
	p     *gofpdf.Fpdf
	tr    func(string) string
	scene *state.Scene
}

func (pw *pdfWriter) shape(i int, sh shape.Shape) {
	p := pw.p
	r := sh.Bounds().Canon()
	switch v := sh.(type) {
	case *shape.Rectangle:
		fill(p, v.Color())
		p.Rect(r.X, r.Y, r.W, r.H, "F")
	case *shape.Ellipse:
		if r.W <= 0 || r.H <= 0 {
			break
		}
		fill(p, v.Color())
		p.Ellipse(r.X+r.W/2, r.Y+r.H/2, r.W/2, r.H/2, 0, "F")
	case *shape.Line:
		c := v.Color()
		p.SetDrawColor(int(c.R()), int(c.G()), int(c.B()))
		p.SetAlpha(float64(c.A())/255, "Normal")
		p.SetLineWidth(max(v.Thickness(), 1))
		p.SetLineCapStyle("square")
		x1, y1, x2, y2 := v.Endpoints()
		p.Line(x1, y1, x2, y2)
	case *shape.Text:
		c := v.Color()
		p.SetTextColor(int(c.R()), int(c.G()), int(c.B()))
		p.SetAlpha(float64(c.A())/255, "Normal")
		p.SetFont("Helvetica", "", v.FontSize())
		p.Text(r.X, r.Y+pw.ascent(v.FontSize()), pw.tr(v.Text()))
	case *shape.Image:
		pw.image(i, v, r)
	}
	p.SetAlpha(1, "Normal")
}

// ascent is the baseline offset for text of the given pixel height.
func (pw *pdfWriter) ascent(size float64) float64 {
	f := pw.scene.Font()
	if f == nil {
		return size * 0.8
	}
	vm := f.VMetrics()
	return float64(vm.Ascent) * f.ScaleForPixelHeight(size)
}

func (pw *pdfWriter) image(i int, v *shape.Image, r shape.Rect) {
	w, h := v.NativeSize()
	if w == 0 || h == 0 || r.W <= 0 || r.H <= 0 {
		return
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for j, px := range v.Pixels() {
		img.SetNRGBA(j%w, j/w, raster.Color(px).NRGBA())
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		logging.Logger().Warn("export: skipping image", "index", i, "err", err)
		return
	}

	name := fmt.Sprintf("image-%d", i)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pw.p.RegisterImageOptionsReader(name, opts, &buf)
	pw.p.ImageOptions(name, r.X, r.Y, r.W, r.H, false, opts, 0, "")
}

func fill(p *gofpdf.Fpdf, c raster.Color) {
	p.SetFillColor(int(c.R()), int(c.G()), int(c.B()))
	p.SetAlpha(float64(c.A())/255, "Normal")
}
