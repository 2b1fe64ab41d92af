package scene

import "github.com/rohankatakam/codeviz/internal/geometry"

// Snapshot is the serialisable form of a Scene. Click handlers are not
// carried over; they are bound again when elements are next created.
type Snapshot struct {
	Order     []Family              `json:"order"`
	Families  map[Family][]*Element `json:"families"`
	ViewBox   geometry.Box          `json:"view_box"`
	Transform geometry.Transform    `json:"transform"`
}

// Snapshot captures the scene's current elements.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Order:     s.Order(),
		Families:  make(map[Family][]*Element, len(s.layers)),
		ViewBox:   s.viewBox,
		Transform: s.transform,
	}
	for _, f := range s.order {
		els := s.Elements(f)
		copies := make([]*Element, len(els))
		for i, e := range els {
			c := *e
			c.onClick = nil
			copies[i] = &c
		}
		snap.Families[f] = copies
	}
	return snap
}

// Restore rebuilds a ready scene from a snapshot.
func Restore(snap Snapshot) *Scene {
	s := New()
	for _, f := range snap.Order {
		s.layer(f)
		for _, e := range snap.Families[f] {
			s.Append(f, e.Key, e.Kind, nil)
			s.Update(f, e.Key, e.Attrs)
		}
	}
	s.viewBox = snap.ViewBox
	if snap.Transform.K != 0 {
		s.transform = snap.Transform
	}
	s.ResetCounts()
	return s
}
