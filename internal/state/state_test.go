package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohankatakam/codeviz/internal/coupling"
	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/style"
	"github.com/rohankatakam/codeviz/internal/tree"
)

func base() ViewState {
	return ViewState{
		Layout:   Layout{Source: "tree.json", ClipDepth: 3, Width: 800, Height: 600},
		Style:    Style{Visualization: style.ModeLines, Theme: "light"},
		Coupling: coupling.Config{Shown: true, MinRatio: 0.5, MinDays: 2, MaxCommonRoots: -1},
	}
}

func TestReduce(t *testing.T) {
	ref := hierarchy.Ref{Generation: 7, Path: "root/a.go"}
	dates := tree.DateRange{Earliest: 10, Latest: 20}

	tests := []struct {
		name   string
		action Action
		check  func(t *testing.T, s ViewState)
	}{
		{"select", SelectNode{Node: ref}, func(t *testing.T, s ViewState) {
			assert.Equal(t, ref, s.Style.Selected)
		}},
		{"hide coupling", SetShowCoupling{Shown: false}, func(t *testing.T, s ViewState) {
			assert.False(t, s.Coupling.Shown)
		}},
		{"ratio", SetMinCouplingRatio{Ratio: 0.9}, func(t *testing.T, s ViewState) {
			assert.Equal(t, 0.9, s.Coupling.MinRatio)
		}},
		{"dates", SetDateRange{Range: dates}, func(t *testing.T, s ViewState) {
			assert.Equal(t, dates, s.DateRange)
		}},
		{"visualization", SetVisualization{Mode: style.ModeDepth}, func(t *testing.T, s ViewState) {
			assert.Equal(t, style.ModeDepth, s.Style.Visualization)
		}},
		{"theme", SetTheme{Name: "dark"}, func(t *testing.T, s ViewState) {
			assert.Equal(t, "dark", s.Style.Theme)
		}},
		{"clip depth", SetClipDepth{Depth: 1}, func(t *testing.T, s ViewState) {
			assert.Equal(t, 1, s.Layout.ClipDepth)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := base()
			after := Reduce(before, tt.action)
			tt.check(t, after)
			assert.Equal(t, base(), before, "input snapshot must not change")
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "selectNode(none)", SelectNode{}.String())
	assert.Equal(t, "selectNode(root/a.go)", SelectNode{Node: hierarchy.Ref{Generation: 1, Path: "root/a.go"}}.String())
	assert.Equal(t, "setMinCouplingRatio(0.75)", SetMinCouplingRatio{Ratio: 0.75}.String())
	assert.Equal(t, "setVisualization(depth)", SetVisualization{Mode: style.ModeDepth}.String())
}

func TestStore_NotifiesPerAction(t *testing.T) {
	s := NewStore(base())
	var seen []ViewState
	s.Subscribe(func(v ViewState) { seen = append(seen, v) })

	s.Dispatch(SetTheme{Name: "dark"})
	s.Dispatch(SetClipDepth{Depth: 2})

	assert.Len(t, seen, 2)
	assert.Equal(t, "dark", seen[0].Style.Theme)
	assert.Equal(t, 3, seen[0].Layout.ClipDepth)
	assert.Equal(t, 2, s.State().Layout.ClipDepth)
}

func TestStore_QueuesNestedDispatch(t *testing.T) {
	s := NewStore(base())
	var order []string
	depth := 0
	s.Subscribe(func(v ViewState) {
		depth++
		defer func() { depth-- }()
		assert.Equal(t, 1, depth, "listener calls must not overlap")
		order = append(order, v.Style.Theme)
		if v.Style.Theme == "dark" {
			s.Dispatch(SetTheme{Name: "light"})
			order = append(order, "after-dispatch")
		}
	})

	s.Dispatch(SetTheme{Name: "dark"})

	assert.Equal(t, []string{"dark", "after-dispatch", "light"}, order)
	assert.Equal(t, "light", s.State().Style.Theme)
}

func TestDispatchFunc(t *testing.T) {
	var got Action
	var d Dispatcher = DispatchFunc(func(a Action) { got = a })
	d.Dispatch(SetShowCoupling{Shown: true})
	assert.Equal(t, SetShowCoupling{Shown: true}, got)
}
