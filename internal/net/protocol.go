package net

import (
	"bytes"
	"errors"
	"fmt"

	"SlideBoard/internal/document"
	"SlideBoard/internal/export"
	"SlideBoard/internal/pptx"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/shape"
	"SlideBoard/internal/state"
)

// Message types sent to clients.
const (
	TypeReply   = "reply"
	TypeChanged = "changed"
	TypeHello   = "hello"
)

var (
	ErrUnknownOp     = errors.New("net: unknown op")
	ErrMissingHandle = errors.New("net: drag_handle needs a handle")
)

// Command is one request from a client. Only the fields the op needs are
// read.
type Command struct {
	ID string `json:"id"`
	Op string `json:"op"`

	UID      state.UID `json:"uid,omitempty"`
	Index    int       `json:"index,omitempty"`
	Additive bool      `json:"additive,omitempty"`

	// Handle is a pointer so that a missing handle is told apart from
	// HandleTopLeft, which is zero.
	Handle *state.Handle `json:"handle,omitempty"`

	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	W         float64 `json:"w,omitempty"`
	H         float64 `json:"h,omitempty"`
	X2        float64 `json:"x2,omitempty"`
	Y2        float64 `json:"y2,omitempty"`
	DX        float64 `json:"dx,omitempty"`
	DY        float64 `json:"dy,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`

	Color    raster.Color `json:"color,omitempty"`
	Text     string       `json:"text,omitempty"`
	FontSize float64      `json:"font_size,omitempty"`

	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	ImageWidth  int    `json:"image_width,omitempty"`
	ImageHeight int    `json:"image_height,omitempty"`
	MaxSide     int    `json:"max_side,omitempty"`
	Data        []byte `json:"data,omitempty"`
}

// Reply answers a Command with the same ID.
type Reply struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	UID       *state.UID    `json:"uid,omitempty"`
	Handle    *state.Handle `json:"handle,omitempty"`
	Bool      *bool         `json:"bool,omitempty"`
	Count     *int          `json:"count,omitempty"`
	Rect      *shape.Rect   `json:"rect,omitempty"`
	Color     *raster.Color `json:"color,omitempty"`
	Text      *string       `json:"text,omitempty"`
	FontSize  *float64      `json:"font_size,omitempty"`
	Kind      *shape.Kind   `json:"kind,omitempty"`
	Selection []state.UID   `json:"selection,omitempty"`
	Data      []byte        `json:"data,omitempty"`
}

// Event notifies clients of a change made by another session.
type Event struct {
	Type    string `json:"type"`
	Session string `json:"session"`
}

func ptr[T any](v T) *T { return &v }

// mutating lists the ops after which other sessions are told to refresh.
var mutating = map[string]bool{
	"clear": true, "add_rectangle": true, "add_ellipse": true, "add_line": true,
	"add_text": true, "add_image": true, "remove": true, "set_rect": true,
	"move": true, "set_color": true, "set_text": true, "set_font_size": true,
	"drag_handle": true, "select": true, "deselect": true, "clear_selection": true,
	"move_selection": true, "load_font": true, "load_snapshot": true, "import_pptx": true,
}

// dispatch runs cmd against s. It must be called with exclusive access to s.
func dispatch(s *state.Scene, cmd Command) (Reply, error) {
	r := Reply{Type: TypeReply, ID: cmd.ID, OK: true}
	switch cmd.Op {
	case "clear":
		s.Clear()
	case "add_rectangle":
		r.UID = ptr(s.AddRectangle(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Color))
	case "add_ellipse":
		r.UID = ptr(s.AddEllipse(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Color))
	case "add_line":
		r.UID = ptr(s.AddLine(cmd.X, cmd.Y, cmd.X2, cmd.Y2, cmd.Color, cmd.Thickness))
	case "add_text":
		r.UID = ptr(s.AddText(cmd.X, cmd.Y, cmd.Text, cmd.Color, cmd.FontSize))
	case "add_image":
		r.UID = ptr(s.AddImage(cmd.X, cmd.Y, cmd.W, cmd.H, raster.UnpackARGB(cmd.Data), cmd.ImageWidth, cmd.ImageHeight))
	case "remove":
		s.Remove(cmd.UID)
	case "bounds":
		b, ok := s.Bounds(cmd.UID)
		r.Bool = ptr(ok)
		if ok {
			r.Rect = &b
		}
	case "set_rect":
		s.SetRect(cmd.UID, shape.Rect{X: cmd.X, Y: cmd.Y, W: cmd.W, H: cmd.H})
	case "move":
		s.Move(cmd.UID, cmd.DX, cmd.DY)
	case "color":
		r.Color = ptr(s.Color(cmd.UID))
	case "set_color":
		s.SetColor(cmd.UID, cmd.Color)
	case "text":
		r.Text = ptr(s.Text(cmd.UID))
	case "set_text":
		s.SetText(cmd.UID, cmd.Text)
	case "font_size":
		r.FontSize = ptr(s.FontSize(cmd.UID))
	case "set_font_size":
		s.SetFontSize(cmd.UID, cmd.FontSize)
	case "pick":
		r.UID = ptr(s.Pick(cmd.X, cmd.Y))
	case "pick_handle":
		r.Handle = ptr(s.PickHandle(cmd.X, cmd.Y))
	case "drag_handle":
		if cmd.Handle == nil {
			return r, ErrMissingHandle
		}
		s.DragHandle(cmd.UID, *cmd.Handle, cmd.DX, cmd.DY)
	case "select":
		s.Select(cmd.UID, cmd.Additive)
	case "deselect":
		s.Deselect(cmd.UID)
	case "clear_selection":
		s.ClearSelection()
	case "is_selected":
		r.Bool = ptr(s.IsSelected(cmd.UID))
	case "primary_selection":
		r.UID = ptr(s.PrimarySelection())
	case "selection":
		r.Selection = s.Selection()
	case "move_selection":
		s.MoveSelection(cmd.DX, cmd.DY)
	case "count":
		r.Count = ptr(s.Count())
	case "uid_at":
		r.UID = ptr(s.UIDAt(cmd.Index))
	case "name_at":
		r.Text = ptr(s.NameAt(cmd.Index))
	case "kind_at":
		r.Kind = ptr(s.KindAt(cmd.Index))
	case "load_font":
		if err := s.LoadFont(cmd.Data); err != nil {
			return r, err
		}
	case "render":
		var buf bytes.Buffer
		if err := export.PNG(&buf, s, cmd.Width, cmd.Height); err != nil {
			return r, err
		}
		r.Data = buf.Bytes()
	case "thumbnail":
		var buf bytes.Buffer
		if err := export.Thumbnail(&buf, s, cmd.Width, cmd.Height, cmd.MaxSide); err != nil {
			return r, err
		}
		r.Data = buf.Bytes()
	case "snapshot":
		var buf bytes.Buffer
		if err := state.Save(&buf, s); err != nil {
			return r, err
		}
		r.Data = buf.Bytes()
	case "load_snapshot":
		if err := state.Load(bytes.NewReader(cmd.Data), s); err != nil {
			return r, err
		}
	case "import_pptx":
		stats, err := document.ImportPPTX(cmd.Data, s, pptx.DefaultOptions())
		if err != nil {
			return r, err
		}
		r.Count = ptr(stats.Shapes + stats.Texts + stats.Images + stats.Placeholders)
	default:
		return r, fmt.Errorf("%w %q", ErrUnknownOp, cmd.Op)
	}
	return r, nil
}
