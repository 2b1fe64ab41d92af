// Package reconcile joins a new data set against the keyed elements already
// on a surface, d3 style: entering items get a new primitive, updating and
// entering items are restyled together, exiting elements are removed.
package reconcile

import "github.com/rohankatakam/codeviz/internal/scene"

// Join is the result of matching new data against previous keys.
type Join[T any] struct {
	Enter  []T
	Update []T
	// Merged is Update ∪ Enter in data order.
	Merged []T
	Exit   []string
}

// Counts summarises a join.
type Counts struct {
	Enter  int
	Update int
	Exit   int
}

// Counts returns the size of each set.
func (j Join[T]) Counts() Counts {
	return Counts{Enter: len(j.Enter), Update: len(j.Update), Exit: len(j.Exit)}
}

// Diff matches data against prev by key. Only the first item with a given
// key takes part; later duplicates are dropped so keys stay unique.
func Diff[T any](prev []string, data []T, key func(T) string) Join[T] {
	previous := make(map[string]struct{}, len(prev))
	for _, k := range prev {
		previous[k] = struct{}{}
	}

	j := Join[T]{Merged: make([]T, 0, len(data))}
	seen := make(map[string]struct{}, len(data))
	for _, d := range data {
		k := key(d)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		if _, ok := previous[k]; ok {
			j.Update = append(j.Update, d)
		} else {
			j.Enter = append(j.Enter, d)
		}
		j.Merged = append(j.Merged, d)
	}

	for _, k := range prev {
		if _, ok := seen[k]; !ok {
			j.Exit = append(j.Exit, k)
		}
	}
	return j
}

// Binding describes how one element family is drawn.
type Binding[T any] struct {
	Family scene.Family
	Kind   scene.Kind
	Key    func(T) string
	// Attrs must not depend on whether the item is entering or updating.
	Attrs func(T) scene.Attrs
	// OnClick, when set, builds the handler registered at creation.
	OnClick func(T) func()
}

// Apply reconciles a family on the surface with data and returns the join.
func Apply[T any](s scene.Surface, b Binding[T], data []T) Join[T] {
	j := Diff(s.Keys(b.Family), data, b.Key)

	for _, d := range j.Enter {
		var handler func()
		if b.OnClick != nil {
			handler = b.OnClick(d)
		}
		s.Append(b.Family, b.Key(d), b.Kind, handler)
	}

	for _, d := range j.Merged {
		s.Update(b.Family, b.Key(d), b.Attrs(d))
	}

	for _, k := range j.Exit {
		s.Remove(b.Family, k)
	}
	return j
}
