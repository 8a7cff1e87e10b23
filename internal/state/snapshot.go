package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"SlideBoard/internal/logging"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/shape"
)

// SnapshotVersion is written into every saved document.
const SnapshotVersion = 1

var (
	ErrSnapshotVersion = errors.New("state: unsupported snapshot version")
	ErrSnapshotKind    = errors.New("state: unknown shape kind in snapshot")
)

type snapshot struct {
	Version int             `json:"version"`
	Shapes  []snapshotShape `json:"shapes"`
}

// snapshotShape is the union of every kind's payload; fields a kind does not
// use are omitted.
type snapshotShape struct {
	Kind  shape.Kind   `json:"kind"`
	Rect  shape.Rect   `json:"rect"`
	Color raster.Color `json:"color"`

	X1        float64 `json:"x1,omitempty"`
	Y1        float64 `json:"y1,omitempty"`
	X2        float64 `json:"x2,omitempty"`
	Y2        float64 `json:"y2,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`

	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`

	ImageWidth  int    `json:"image_width,omitempty"`
	ImageHeight int    `json:"image_height,omitempty"`
	Pixels      []byte `json:"pixels,omitempty"`
}

// Save writes every shape, in paint order, as a JSON document. Selection
// and uids are session state and are not saved.
func Save(w io.Writer, s *Scene) error {
	doc := snapshot{Version: SnapshotVersion, Shapes: make([]snapshotShape, 0, len(s.shapes))}
	for _, e := range s.shapes {
		doc.Shapes = append(doc.Shapes, encodeShape(e.shape))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("state: encode snapshot: %w", err)
	}
	logging.Logger().Debug("state: snapshot saved", "shapes", len(doc.Shapes))
	return nil
}

func encodeShape(sh shape.Shape) snapshotShape {
	out := snapshotShape{Kind: sh.Kind(), Rect: sh.Bounds()}
	if c, ok := sh.(shape.Colorable); ok {
		out.Color = c.Color()
	}
	switch v := sh.(type) {
	case *shape.Line:
		out.X1, out.Y1, out.X2, out.Y2 = v.Endpoints()
		out.Thickness = v.Thickness()
	case *shape.Text:
		out.Text = v.Text()
		out.FontSize = v.FontSize()
	case *shape.Image:
		out.ImageWidth, out.ImageHeight = v.NativeSize()
		out.Pixels = raster.PackARGB(v.Pixels())
	}
	return out
}

// Load replaces the contents of s with a document written by Save. Shapes
// get fresh uids. On error s is left untouched.
func Load(r io.Reader, s *Scene) error {
	var doc snapshot
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("state: decode snapshot: %w", err)
	}
	if doc.Version != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, doc.Version)
	}
	for i, sh := range doc.Shapes {
		switch sh.Kind {
		case shape.KindRectangle, shape.KindEllipse, shape.KindLine, shape.KindText, shape.KindImage:
		default:
			return fmt.Errorf("%w: shape %d has kind %d", ErrSnapshotKind, i, sh.Kind)
		}
	}

	s.Clear()
	for _, sh := range doc.Shapes {
		r := sh.Rect
		switch sh.Kind {
		case shape.KindRectangle:
			s.AddRectangle(r.X, r.Y, r.W, r.H, sh.Color)
		case shape.KindEllipse:
			s.AddEllipse(r.X, r.Y, r.W, r.H, sh.Color)
		case shape.KindLine:
			s.AddLine(sh.X1, sh.Y1, sh.X2, sh.Y2, sh.Color, sh.Thickness)
		case shape.KindText:
			s.AddText(r.X, r.Y, sh.Text, sh.Color, sh.FontSize)
		case shape.KindImage:
			s.AddImage(r.X, r.Y, r.W, r.H, raster.UnpackARGB(sh.Pixels), sh.ImageWidth, sh.ImageHeight)
		}
	}
	logging.Logger().Debug("state: snapshot loaded", "shapes", len(doc.Shapes))
	return nil
}
