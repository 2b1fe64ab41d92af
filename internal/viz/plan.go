// Package viz is the render engine: it classifies each state transition and
// reconciles the map cells, the selection outline and the coupling edges
// against the render surface.
package viz

import (
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/rohankatakam/codeviz/internal/state"
)

// Plan says which reconciliation paths a pass runs. Full supersedes
// Restyle; Coupling combines with either.
type Plan struct {
	Full         bool
	Restyle      bool
	Coupling     bool
	ThemeChanged bool
}

// Classify compares two snapshots slice by slice. A nil prev means nothing
// has been drawn yet.
func Classify(prev *state.ViewState, next state.ViewState) Plan {
	if prev == nil {
		return Plan{Full: true, ThemeChanged: true}
	}

	var p Plan
	if !cmp.Equal(prev.Layout, next.Layout) {
		p.Full = true
	} else if !cmp.Equal(prev.Style, next.Style) {
		p.Restyle = true
	}
	if !cmp.Equal(prev.Coupling, next.Coupling) || prev.DateRange != next.DateRange {
		p.Coupling = true
	}
	p.ThemeChanged = prev.Style.Theme != next.Style.Theme
	return p
}

// Empty reports whether the pass has nothing to redraw.
func (p Plan) Empty() bool {
	return !p.Full && !p.Restyle && !p.Coupling
}

// Kind names the plan for logs and metrics, e.g. "full" or
// "restyle+coupling".
func (p Plan) Kind() string {
	var parts []string
	switch {
	case p.Full:
		parts = append(parts, "full")
	case p.Restyle:
		parts = append(parts, "restyle")
	}
	if p.Coupling {
		parts = append(parts, "coupling")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// changes describes what differs between two snapshots, for debug logs.
func changes(prev *state.ViewState, next state.ViewState) string {
	if prev == nil {
		return ""
	}
	return cmp.Diff(*prev, next)
}
