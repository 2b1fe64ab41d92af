package scene

import (
	"fmt"
	"sort"

	"github.com/rohankatakam/codeviz/internal/geometry"
)

// Element is one keyed visual primitive.
type Element struct {
	Key   string `json:"key"`
	Kind  Kind   `json:"kind"`
	Attrs Attrs  `json:"attrs"`

	seq     uint64
	onClick func()
}

// OpCounts tallies the side effects issued against a family.
type OpCounts struct {
	Appended int
	Updated  int
	Removed  int
}

type layer struct {
	elems map[string]*Element
}

// Scene is an in-memory Surface. Families are drawn in Order, elements
// within a family in creation order.
type Scene struct {
	ready     bool
	order     []Family
	layers    map[Family]*layer
	viewBox   geometry.Box
	transform geometry.Transform
	seq       uint64
	counts    map[Family]*OpCounts
}

// New returns a ready, empty scene.
func New() *Scene {
	return &Scene{
		ready:     true,
		layers:    make(map[Family]*layer),
		transform: geometry.Identity,
		counts:    make(map[Family]*OpCounts),
	}
}

// SetReady marks the surface as attached or not yet attached.
func (s *Scene) SetReady(ready bool) {
	s.ready = ready
}

// Ready reports whether the scene can take side effects.
func (s *Scene) Ready() bool {
	return s.ready
}

func (s *Scene) layer(f Family) *layer {
	l, ok := s.layers[f]
	if !ok {
		l = &layer{elems: make(map[string]*Element)}
		s.layers[f] = l
		s.order = append(s.order, f)
		s.counts[f] = &OpCounts{}
	}
	return l
}

// Keys lists the keys of a family in creation order.
func (s *Scene) Keys(f Family) []string {
	els := s.Elements(f)
	keys := make([]string, len(els))
	for i, e := range els {
		keys[i] = e.Key
	}
	return keys
}

// Append creates an element with its click handler. Attributes are set by
// the following Update.
func (s *Scene) Append(f Family, key string, kind Kind, onClick func()) {
	l := s.layer(f)
	s.seq++
	l.elems[key] = &Element{Key: key, Kind: kind, seq: s.seq, onClick: onClick}
	s.counts[f].Appended++
}

// Update replaces the attributes of an existing element; unknown keys are
// ignored.
func (s *Scene) Update(f Family, key string, attrs Attrs) {
	l := s.layer(f)
	e, ok := l.elems[key]
	if !ok {
		return
	}
	e.Attrs = attrs
	s.counts[f].Updated++
}

// Remove deletes an element; unknown keys are ignored.
func (s *Scene) Remove(f Family, key string) {
	l := s.layer(f)
	if _, ok := l.elems[key]; !ok {
		return
	}
	delete(l.elems, key)
	s.counts[f].Removed++
}

// Raise moves a family to the top of the drawing order.
func (s *Scene) Raise(f Family) {
	s.layer(f)
	out := s.order[:0]
	for _, o := range s.order {
		if o != f {
			out = append(out, o)
		}
	}
	s.order = append(out, f)
}

// SetViewBox sets the coordinate box of the map.
func (s *Scene) SetViewBox(b geometry.Box) {
	s.viewBox = b
}

// SetTransform sets the pan/zoom transform of the map group.
func (s *Scene) SetTransform(t geometry.Transform) {
	s.transform = t
}

// ViewBox is the last view box set.
func (s *Scene) ViewBox() geometry.Box {
	return s.viewBox
}

// Transform is the current pan/zoom transform of the map group.
func (s *Scene) Transform() geometry.Transform {
	return s.transform
}

// Order lists families bottom to top.
func (s *Scene) Order() []Family {
	return append([]Family(nil), s.order...)
}

// Elements returns a family's elements in creation order.
func (s *Scene) Elements(f Family) []*Element {
	l, ok := s.layers[f]
	if !ok {
		return nil
	}
	out := make([]*Element, 0, len(l.elems))
	for _, e := range l.elems {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Element looks up one element.
func (s *Scene) Element(f Family, key string) (*Element, bool) {
	l, ok := s.layers[f]
	if !ok {
		return nil, false
	}
	e, ok := l.elems[key]
	return e, ok
}

// Click invokes the handler registered when the element was created.
func (s *Scene) Click(f Family, key string) error {
	e, ok := s.Element(f, key)
	if !ok {
		return fmt.Errorf("no %s element %q", f, key)
	}
	if e.onClick == nil {
		return fmt.Errorf("%s element %q has no click handler", f, key)
	}
	e.onClick()
	return nil
}

// Counts returns the side effects issued against a family since the last
// ResetCounts.
func (s *Scene) Counts(f Family) OpCounts {
	if c, ok := s.counts[f]; ok {
		return *c
	}
	return OpCounts{}
}

// ResetCounts zeroes every family's counters.
func (s *Scene) ResetCounts() {
	for _, c := range s.counts {
		*c = OpCounts{}
	}
}

// Bind replaces the click handler of an existing element. Restored scenes
// have no handlers until the engine binds them again. It reports whether the
// element exists.
func (s *Scene) Bind(f Family, key string, onClick func()) bool {
	e, ok := s.Element(f, key)
	if !ok {
		return false
	}
	e.onClick = onClick
	return true
}
