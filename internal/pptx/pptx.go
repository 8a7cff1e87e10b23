// Package pptx imports the shapes of a PowerPoint deck into a scene.
//
// Rectangles, ellipses, lines, connectors, pictures and paragraph text are
// read from every slide; groups are flattened. Slides are stacked top to
// bottom. The importer talks to the scene only through Sink.
package pptx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"

	"SlideBoard/internal/logging"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/state"
)

// EMUsPerPixel converts English Metric Units to pixels at 96 DPI.
const EMUsPerPixel = 9525

// Default text insets of a body, in EMU.
const (
	defaultLeftInset = 91440
	defaultTopInset  = 45720
)

var ErrNotPresentation = errors.New("pptx: no slides found")

// Sink receives the imported shapes. *state.Scene implements it.
type Sink interface {
	AddRectangle(x, y, w, h float64, c raster.Color) state.UID
	AddEllipse(x, y, w, h float64, c raster.Color) state.UID
	AddLine(x1, y1, x2, y2 float64, c raster.Color, thickness float64) state.UID
	AddText(x, y float64, text string, c raster.Color, size float64) state.UID
	AddImage(x, y, w, h float64, pixels []uint32, imgW, imgH int) state.UID
}

var _ Sink = (*state.Scene)(nil)

type Options struct {
	// SlideGap is the vertical space between stacked slides, in pixels.
	SlideGap float64
	// ShapeColor fills shapes whose fill cannot be resolved.
	ShapeColor raster.Color
	// TextColor is used for runs without a color.
	TextColor raster.Color
	// TextSize is the pixel size of runs without a size.
	TextSize float64
	// LineThickness applies to lines without an outline width.
	LineThickness float64
	// Placeholder fills pictures that cannot be decoded.
	Placeholder raster.Color
	// MaxImageSide caps the stored size of decoded pictures. Zero keeps
	// the native size.
	MaxImageSide int
	// MaxPartSize bounds the bytes read from any one archive member.
	MaxPartSize int64
}

func DefaultOptions() Options {
	return Options{
		SlideGap:      20,
		ShapeColor:    0xFFCCCCCC,
		TextColor:     0xFF000000,
		TextSize:      24,
		LineThickness: 3,
		Placeholder:   0xFF888888,
		MaxImageSide:  2048,
		MaxPartSize:   64 << 20,
	}
}

// Stats summarizes an import.
type Stats struct {
	Slides       int
	Shapes       int
	Texts        int
	Images       int
	Placeholders int
	// SkippedSlides counts slides whose XML could not be parsed.
	SkippedSlides int
}

// ImportFile opens path and imports it.
func ImportFile(name string, sink Sink, opts Options) (Stats, error) {
	f, err := os.Open(name)
	if err != nil {
		return Stats{}, fmt.Errorf("pptx: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Stats{}, fmt.Errorf("pptx: %w", err)
	}
	return Import(f, st.Size(), sink, opts)
}

// Import reads the deck in r and adds its shapes to sink.
func Import(r io.ReaderAt, size int64, sink Sink, opts Options) (Stats, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Stats{}, fmt.Errorf("pptx: open archive: %w", err)
	}
	im := &importer{
		files:    make(map[string]*zip.File, len(zr.File)),
		sink:     sink,
		opts:     opts,
		pictures: make(map[string]*picture),
	}
	for _, f := range zr.File {
		im.files[f.Name] = f
	}

	slides, height, err := im.slideParts()
	if err != nil {
		return Stats{}, err
	}
	if len(slides) == 0 {
		return Stats{}, ErrNotPresentation
	}

	for i, part := range slides {
		top := float64(i) * (height + opts.SlideGap)
		if err := im.importSlide(part, top); err != nil {
			logging.Logger().Warn("pptx: skipping slide", "path", part, "err", err)
			im.stats.SkippedSlides++
			continue
		}
		im.stats.Slides++
	}
	logging.Logger().Info("pptx: imported",
		"slides", im.stats.Slides, "shapes", im.stats.Shapes,
		"images", im.stats.Images, "placeholders", im.stats.Placeholders)
	return im.stats, nil
}

type importer struct {
	files    map[string]*zip.File
	sink     Sink
	opts     Options
	stats    Stats
	pictures map[string]*picture
}

func (im *importer) read(name string) ([]byte, error) {
	f, ok := im.files[name]
	if !ok {
		return nil, fmt.Errorf("pptx: missing part %s: %w", name, os.ErrNotExist)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("pptx: open %s: %w", name, err)
	}
	defer rc.Close()

	limit := im.opts.MaxPartSize
	if limit <= 0 {
		limit = DefaultOptions().MaxPartSize
	}
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("pptx: read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("pptx: %s exceeds %d bytes", name, limit)
	}
	return data, nil
}

func (im *importer) decode(name string, v any) error {
	data, err := im.read(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("pptx: parse %s: %w", name, err)
	}
	return nil
}

// rels resolves the relationships of part to archive paths.
func (im *importer) rels(part string) map[string]string {
	dir, file := path.Split(part)
	var doc relationships
	if err := im.decode(dir+"_rels/"+file+".rels", &doc); err != nil {
		return nil
	}
	out := make(map[string]string, len(doc.Items))
	for _, rel := range doc.Items {
		if strings.EqualFold(rel.TargetMode, "External") {
			continue
		}
		target := rel.Target
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join(dir, target)
		}
		out[rel.ID] = target
	}
	return out
}

// slideParts lists the slide parts in presentation order, and the slide
// height in pixels. Decks without a usable presentation part fall back to
// slide1.xml, slide2.xml and so on.
func (im *importer) slideParts() ([]string, float64, error) {
	const mainPart = "ppt/presentation.xml"

	var pres presentation
	if _, ok := im.files[mainPart]; ok {
		if err := im.decode(mainPart, &pres); err != nil {
			return nil, 0, err
		}
	}
	height := float64(pres.SlideSize.Cy) / EMUsPerPixel

	var parts []string
	rels := im.rels(mainPart)
	for _, id := range pres.SlideIDs {
		if p, ok := rels[id.RelID]; ok {
			if _, ok := im.files[p]; ok {
				parts = append(parts, p)
			}
		}
	}
	if len(parts) == 0 {
		for n := 1; ; n++ {
			p := fmt.Sprintf("ppt/slides/slide%d.xml", n)
			if _, ok := im.files[p]; !ok {
				break
			}
			parts = append(parts, p)
		}
	}
	return parts, height, nil
}

func (im *importer) importSlide(part string, top float64) error {
	var s slide
	if err := im.decode(part, &s); err != nil {
		return err
	}
	sc := slideContext{rels: im.rels(part)}
	im.walk(&sc, s.Tree.Children, affine{sx: 1, sy: 1, ty: top * EMUsPerPixel})
	return nil
}

type slideContext struct {
	rels map[string]string
}

// affine maps EMU coordinates of a shape tree to slide EMU coordinates.
// Groups stack their child transform on top of their parent's.
type affine struct {
	sx, sy, tx, ty float64
}

func (a affine) point(x, y int64) (float64, float64) {
	return float64(x)*a.sx + a.tx, float64(y)*a.sy + a.ty
}

// box converts a transform to a pixel box.
func (a affine) box(t *transform) (x, y, w, h float64) {
	ex, ey := a.point(t.Off.X, t.Off.Y)
	return ex / EMUsPerPixel, ey / EMUsPerPixel,
		float64(t.Ext.Cx) * a.sx / EMUsPerPixel, float64(t.Ext.Cy) * a.sy / EMUsPerPixel
}

// group returns the transform for the children of a group.
func (a affine) group(t *transform) affine {
	if t == nil || t.ChExt.Cx == 0 || t.ChExt.Cy == 0 {
		return a
	}
	kx := float64(t.Ext.Cx) / float64(t.ChExt.Cx)
	ky := float64(t.Ext.Cy) / float64(t.ChExt.Cy)
	return affine{
		sx: a.sx * kx,
		sy: a.sy * ky,
		tx: a.sx*(float64(t.Off.X)-float64(t.ChOff.X)*kx) + a.tx,
		ty: a.sy*(float64(t.Off.Y)-float64(t.ChOff.Y)*ky) + a.ty,
	}
}

func (im *importer) walk(sc *slideContext, nodes []node, xf affine) {
	for i := range nodes {
		n := &nodes[i]
		switch n.XMLName.Local {
		case "sp":
			im.shape(n, xf)
		case "cxnSp":
			im.connector(n, xf)
		case "pic":
			im.picture(sc, n, xf)
		case "grpSp":
			im.walk(sc, n.Children, xf.group(n.GrpSpPr.Xfrm))
		}
	}
}

func (im *importer) shape(n *node, xf affine) {
	pr := &n.SpPr
	if pr.Xfrm == nil {
		// Placeholders inherit their frame from the layout; only their
		// text is kept, at the slide origin.
		im.text(n.TxBody, xf, &transform{})
		return
	}
	x, y, w, h := xf.box(pr.Xfrm)

	geom := "rect"
	if pr.PrstGeom != nil && pr.PrstGeom.Prst != "" {
		geom = pr.PrstGeom.Prst
	}
	switch geom {
	case "line", "straightConnector1":
		im.line(pr, xf)
	case "ellipse", "oval":
		if pr.NoFill == nil {
			im.sink.AddEllipse(x, y, w, h, pr.SolidFill.resolve(im.opts.ShapeColor))
			im.stats.Shapes++
		}
	default:
		if pr.NoFill == nil {
			im.sink.AddRectangle(x, y, w, h, pr.SolidFill.resolve(im.opts.ShapeColor))
			im.stats.Shapes++
		}
	}
	im.text(n.TxBody, xf, pr.Xfrm)
}

func (im *importer) connector(n *node, xf affine) {
	if n.SpPr.Xfrm != nil {
		im.line(&n.SpPr, xf)
	}
}

// line draws the diagonal of the frame, mirrored by the flip flags.
func (im *importer) line(pr *shapeProps, xf affine) {
	x, y, w, h := xf.box(pr.Xfrm)
	x1, y1, x2, y2 := x, y, x+w, y+h
	if pr.Xfrm.FlipH {
		x1, x2 = x2, x1
	}
	if pr.Xfrm.FlipV {
		y1, y2 = y2, y1
	}

	c := im.opts.ShapeColor
	thickness := im.opts.LineThickness
	if ln := pr.Ln; ln != nil {
		if ln.NoFill != nil {
			return
		}
		c = ln.SolidFill.resolve(pr.SolidFill.resolve(c))
		if ln.W > 0 {
			thickness = max(1, float64(ln.W)/EMUsPerPixel)
		}
	} else {
		c = pr.SolidFill.resolve(c)
	}
	im.sink.AddLine(x1, y1, x2, y2, c, thickness)
	im.stats.Shapes++
}

// text adds one text shape per paragraph, top to bottom inside the body
// insets. Empty paragraphs only advance the pen.
func (im *importer) text(body *textBody, xf affine, t *transform) {
	if body == nil {
		return
	}
	x, y, _, _ := xf.box(t)
	left, top := int64(defaultLeftInset), int64(defaultTopInset)
	if body.BodyPr.LIns != nil {
		left = *body.BodyPr.LIns
	}
	if body.BodyPr.TIns != nil {
		top = *body.BodyPr.TIns
	}
	x += float64(left) * xf.sx / EMUsPerPixel
	y += float64(top) * xf.sy / EMUsPerPixel

	for _, p := range body.Paragraphs {
		var (
			sb      strings.Builder
			size    float64
			colored bool
		)
		color := im.opts.TextColor
		// The first run that sets a size or a color decides it for the
		// whole paragraph.
		for _, r := range p.Runs {
			sb.WriteString(r.Text)
			if r.Props == nil {
				continue
			}
			if size == 0 && r.Props.Size > 0 {
				size = pointsToPixels(r.Props.Size)
			}
			if !colored && r.Props.SolidFill != nil {
				color, colored = r.Props.SolidFill.resolve(color), true
			}
		}
		if size == 0 && p.EndProps != nil && p.EndProps.Size > 0 {
			size = pointsToPixels(p.EndProps.Size)
		}
		if size == 0 {
			size = im.opts.TextSize
		}

		if s := norm.NFC.String(sb.String()); strings.TrimSpace(s) != "" {
			im.sink.AddText(x, y, s, color, size)
			im.stats.Texts++
		}
		y += size * 1.2
	}
}

// pointsToPixels converts a run size in hundredths of a point to pixels at
// 96 DPI.
func pointsToPixels(hundredths int) float64 {
	return float64(hundredths) / 100 * 96 / 72
}

func (im *importer) picture(sc *slideContext, n *node, xf affine) {
	if n.SpPr.Xfrm == nil {
		return
	}
	x, y, w, h := xf.box(n.SpPr.Xfrm)

	var pic *picture
	if n.BlipFill != nil {
		if target, ok := sc.rels[n.BlipFill.Blip.Embed]; ok {
			pic = im.loadPicture(target)
		}
	}
	if pic == nil {
		im.sink.AddRectangle(x, y, w, h, im.opts.Placeholder)
		im.stats.Placeholders++
		return
	}
	im.sink.AddImage(x, y, w, h, pic.pixels, pic.width, pic.height)
	im.stats.Images++
}

// loadPicture decodes a media part once per import. Failures are cached
// too, as nil.
func (im *importer) loadPicture(name string) *picture {
	if pic, ok := im.pictures[name]; ok {
		return pic
	}
	var pic *picture
	data, err := im.read(name)
	if err == nil {
		pic, err = decodePicture(data, im.opts.MaxImageSide)
	}
	if err != nil {
		logging.Logger().Warn("pptx: picture replaced by placeholder", "path", name, "err", err)
	}
	im.pictures[name] = pic
	return pic
}
