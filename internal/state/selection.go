package state

import (
	"slices"

	"SlideBoard/internal/shape"
)

// Select adds uid to the selection. Unless additive, the previous
// selection is dropped first. Absent uids are ignored.
func (s *Scene) Select(uid UID, additive bool) {
	if s.index(uid) < 0 {
		return
	}
	if !additive {
		s.selection = s.selection[:0]
	}
	if !slices.Contains(s.selection, uid) {
		s.selection = append(s.selection, uid)
	}
}

func (s *Scene) Deselect(uid UID) {
	if i := slices.Index(s.selection, uid); i >= 0 {
		s.selection = slices.Delete(s.selection, i, i+1)
	}
}

func (s *Scene) ClearSelection() {
	s.selection = s.selection[:0]
}

func (s *Scene) IsSelected(uid UID) bool {
	return slices.Contains(s.selection, uid)
}

// PrimarySelection is the most recently selected uid, or NoUID.
func (s *Scene) PrimarySelection() UID {
	if len(s.selection) == 0 {
		return NoUID
	}
	return s.selection[len(s.selection)-1]
}

// Selection returns the selected uids in the order they were selected.
func (s *Scene) Selection() []UID {
	return slices.Clone(s.selection)
}

// MoveSelection translates every selected shape.
func (s *Scene) MoveSelection(dx, dy float64) {
	for _, uid := range s.selection {
		s.Move(uid, dx, dy)
	}
}

// SelectionBounds is the union of the selected bounding boxes.
func (s *Scene) SelectionBounds() (shape.Rect, bool) {
	var (
		u     shape.Rect
		found bool
	)
	for _, uid := range s.selection {
		b, ok := s.Bounds(uid)
		if !ok {
			continue
		}
		if !found {
			u, found = b.Canon(), true
			continue
		}
		u = u.Union(b)
	}
	return u, found
}
