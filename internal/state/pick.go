package state

import "math"

// Pick returns the topmost shape under (px, py), or NoUID. The selection is
// left alone.
func (s *Scene) Pick(px, py float64) UID {
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].shape.Contains(px, py) {
			return s.shapes[i].uid
		}
	}
	return NoUID
}

// PickHandle returns the resize grip under (px, py). Grips exist only while
// exactly one shape is selected.
func (s *Scene) PickHandle(px, py float64) Handle {
	if len(s.selection) != 1 {
		return NoHandle
	}
	b, ok := s.Bounds(s.selection[0])
	if !ok {
		return NoHandle
	}
	hit := s.opts.HandleHit
	for h := range Handle(handleCount) {
		ax, ay := h.Anchor(b)
		if math.Abs(px-ax) <= hit && math.Abs(py-ay) <= hit {
			return h
		}
	}
	return NoHandle
}

// DragHandle resizes uid as if grip h were dragged by (dx, dy).
func (s *Scene) DragHandle(uid UID, h Handle, dx, dy float64) {
	b, ok := s.Bounds(uid)
	if !ok || h == NoHandle {
		return
	}
	s.SetRect(uid, h.Resize(b, dx, dy).Canon())
}
