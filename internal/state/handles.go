package state

import (
	"math"

	"SlideBoard/internal/shape"
)

// Handle is one of the eight resize grips of a single selected shape,
// numbered clockwise from the top-left corner.
type Handle int

const (
	HandleTopLeft Handle = iota
	HandleTopMid
	HandleTopRight
	HandleRightMid
	HandleBottomRight
	HandleBottomMid
	HandleBottomLeft
	HandleLeftMid

	handleCount = 8
)

// NoHandle is returned when no grip is under the pointer.
const NoHandle Handle = -1

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTopMid:
		return "top"
	case HandleTopRight:
		return "top-right"
	case HandleRightMid:
		return "right"
	case HandleBottomRight:
		return "bottom-right"
	case HandleBottomMid:
		return "bottom"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleLeftMid:
		return "left"
	}
	return "none"
}

// Anchor returns the canvas point h sits on for box r.
func (h Handle) Anchor(r shape.Rect) (x, y float64) {
	r = r.Canon()
	x0, y0 := r.X, r.Y
	xm, ym := r.X+r.W/2, r.Y+r.H/2
	x1, y1 := r.X+r.W, r.Y+r.H
	switch h {
	case HandleTopLeft:
		return x0, y0
	case HandleTopMid:
		return xm, y0
	case HandleTopRight:
		return x1, y0
	case HandleRightMid:
		return x1, ym
	case HandleBottomRight:
		return x1, y1
	case HandleBottomMid:
		return xm, y1
	case HandleBottomLeft:
		return x0, y1
	case HandleLeftMid:
		return x0, ym
	}
	return math.NaN(), math.NaN()
}

// Resize returns the box that results from dragging h by (dx, dy). Corner
// grips move two edges, mid grips one. The result may be inverted; callers
// that need a positive size call Canon.
func (h Handle) Resize(r shape.Rect, dx, dy float64) shape.Rect {
	r = r.Canon()
	left, top := r.X, r.Y
	right, bottom := r.X+r.W, r.Y+r.H
	switch h {
	case HandleTopLeft:
		left, top = left+dx, top+dy
	case HandleTopMid:
		top += dy
	case HandleTopRight:
		right, top = right+dx, top+dy
	case HandleRightMid:
		right += dx
	case HandleBottomRight:
		right, bottom = right+dx, bottom+dy
	case HandleBottomMid:
		bottom += dy
	case HandleBottomLeft:
		left, bottom = left+dx, bottom+dy
	case HandleLeftMid:
		left += dx
	default:
		return r
	}
	return shape.Rect{X: left, Y: top, W: right - left, H: bottom - top}
}
