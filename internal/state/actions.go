package state

import (
	"fmt"

	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/style"
	"github.com/rohankatakam/codeviz/internal/tree"
)

// Action is a proposed state change. The set is closed.
type Action interface {
	fmt.Stringer
	action()
}

// SelectNode selects a node; the zero Ref clears the selection.
type SelectNode struct{ Node hierarchy.Ref }

// SetShowCoupling shows or hides coupling edges.
type SetShowCoupling struct{ Shown bool }

// SetMinCouplingRatio sets the minimum co-change ratio, in [0.25, 1].
type SetMinCouplingRatio struct{ Ratio float64 }

// SetDateRange restricts coupling to buckets overlapping the range.
type SetDateRange struct{ Range tree.DateRange }

// SetVisualization switches the fill mode.
type SetVisualization struct{ Mode style.Mode }

// SetTheme switches the named palette.
type SetTheme struct{ Name string }

// SetClipDepth changes how deep the map is drawn.
type SetClipDepth struct{ Depth int }

func (SelectNode) action()          {}
func (SetShowCoupling) action()     {}
func (SetMinCouplingRatio) action() {}
func (SetDateRange) action()        {}
func (SetVisualization) action()    {}
func (SetTheme) action()            {}
func (SetClipDepth) action()        {}

func (a SelectNode) String() string {
	if a.Node.IsZero() {
		return "selectNode(none)"
	}
	return fmt.Sprintf("selectNode(%s)", a.Node.Path)
}

func (a SetShowCoupling) String() string { return fmt.Sprintf("setShowCoupling(%t)", a.Shown) }

func (a SetMinCouplingRatio) String() string {
	return fmt.Sprintf("setMinCouplingRatio(%.2f)", a.Ratio)
}

func (a SetDateRange) String() string {
	return fmt.Sprintf("setDateRange(%d, %d)", a.Range.Earliest, a.Range.Latest)
}

func (a SetVisualization) String() string { return fmt.Sprintf("setVisualization(%s)", a.Mode) }
func (a SetTheme) String() string         { return fmt.Sprintf("setTheme(%s)", a.Name) }
func (a SetClipDepth) String() string     { return fmt.Sprintf("setClipDepth(%d)", a.Depth) }

// Reduce applies a to s. Values are taken as already validated.
func Reduce(s ViewState, a Action) ViewState {
	switch a := a.(type) {
	case SelectNode:
		s.Style.Selected = a.Node
	case SetShowCoupling:
		s.Coupling.Shown = a.Shown
	case SetMinCouplingRatio:
		s.Coupling.MinRatio = a.Ratio
	case SetDateRange:
		s.DateRange = a.Range
	case SetVisualization:
		s.Style.Visualization = a.Mode
	case SetTheme:
		s.Style.Theme = a.Name
	case SetClipDepth:
		s.Layout.ClipDepth = a.Depth
	}
	return s
}
