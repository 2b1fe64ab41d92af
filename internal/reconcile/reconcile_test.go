package reconcile

import (
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/codeviz/internal/scene"
)

type item struct {
	key   string
	value int
}

func itemKey(i item) string { return i.key }

func sortedKeys(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.key
	}
	sort.Strings(out)
	return out
}

func TestDiff(t *testing.T) {
	prev := []string{"a", "b", "c"}
	data := []item{{"b", 1}, {"d", 2}, {"a", 3}}

	j := Diff(prev, data, itemKey)

	assert.Equal(t, []string{"d"}, sortedKeys(j.Enter))
	assert.Equal(t, []string{"a", "b"}, sortedKeys(j.Update))
	assert.Equal(t, []string{"c"}, j.Exit)
	assert.Equal(t, data, j.Merged, "merged keeps data order")
	assert.Equal(t, Counts{Enter: 1, Update: 2, Exit: 1}, j.Counts())
}

func TestDiff_SetLaws(t *testing.T) {
	cases := []struct {
		prev []string
		next []string
	}{
		{nil, nil},
		{nil, []string{"a", "b"}},
		{[]string{"a", "b"}, nil},
		{[]string{"a", "b", "c"}, []string{"c", "d", "e"}},
		{[]string{"x"}, []string{"x"}},
	}

	for i, tc := range cases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			data := make([]item, len(tc.next))
			for i, k := range tc.next {
				data[i] = item{key: k}
			}
			j := Diff(tc.prev, data, itemKey)

			enter := map[string]bool{}
			for _, e := range j.Enter {
				enter[e.key] = true
			}
			union := map[string]bool{}
			for _, u := range j.Update {
				assert.False(t, enter[u.key], "enter and update must be disjoint")
				union[u.key] = true
			}
			for k := range enter {
				union[k] = true
			}

			nextSet := map[string]bool{}
			for _, k := range tc.next {
				nextSet[k] = true
			}
			assert.Equal(t, len(nextSet), len(union))
			for k := range nextSet {
				assert.True(t, union[k])
			}

			var wantExit []string
			for _, k := range tc.prev {
				if !nextSet[k] {
					wantExit = append(wantExit, k)
				}
			}
			assert.Equal(t, wantExit, j.Exit)
		})
	}
}

func TestDiff_DuplicateKeysDropped(t *testing.T) {
	j := Diff(nil, []item{{"a", 1}, {"a", 2}}, itemKey)

	require.Len(t, j.Enter, 1)
	assert.Equal(t, 1, j.Enter[0].value)
}

func TestApply(t *testing.T) {
	s := scene.New()
	var clicked []string
	b := Binding[item]{
		Family: scene.FamilyCells,
		Kind:   scene.KindPolygon,
		Key:    itemKey,
		Attrs: func(i item) scene.Attrs {
			return scene.Attrs{Title: i.key, StrokeWidth: float64(i.value)}
		},
		OnClick: func(i item) func() {
			return func() { clicked = append(clicked, i.key) }
		},
	}

	j := Apply(s, b, []item{{"a", 1}, {"b", 2}})
	assert.Equal(t, Counts{Enter: 2}, j.Counts())
	assert.Equal(t, scene.OpCounts{Appended: 2, Updated: 2}, s.Counts(scene.FamilyCells))

	s.ResetCounts()
	j = Apply(s, b, []item{{"b", 5}, {"c", 3}})
	assert.Equal(t, Counts{Enter: 1, Update: 1, Exit: 1}, j.Counts())
	assert.Equal(t, scene.OpCounts{Appended: 1, Updated: 2, Removed: 1}, s.Counts(scene.FamilyCells))
	assert.Equal(t, []string{"b", "c"}, s.Keys(scene.FamilyCells))

	// updated items are restyled exactly like new ones
	e, ok := s.Element(scene.FamilyCells, "b")
	require.True(t, ok)
	assert.Equal(t, 5.0, e.Attrs.StrokeWidth)

	// the handler registered at creation still fires after an update
	require.NoError(t, s.Click(scene.FamilyCells, "b"))
	require.NoError(t, s.Click(scene.FamilyCells, "c"))
	assert.Equal(t, []string{"b", "c"}, clicked)
}

func TestApply_NoHandler(t *testing.T) {
	s := scene.New()
	b := Binding[item]{
		Family: scene.FamilySelection,
		Kind:   scene.KindPolygon,
		Key:    itemKey,
		Attrs:  func(item) scene.Attrs { return scene.Attrs{} },
	}

	Apply(s, b, []item{{"a", 1}})
	assert.Error(t, s.Click(scene.FamilySelection, "a"))
}
