// Package state holds the view state snapshot the render engine consumes and
// the minimal container that turns dispatched actions into new snapshots.
package state

import (
	"github.com/rohankatakam/codeviz/internal/coupling"
	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/style"
	"github.com/rohankatakam/codeviz/internal/tree"
)

// Layout is the structural slice. Any change to it rebuilds the map.
type Layout struct {
	// Source identifies the loaded dataset, usually the tree file path.
	Source          string  `json:"source"`
	ClipDepth       int     `json:"clip_depth"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	TimescaleHeight float64 `json:"timescale_height"`
}

// Style is the cheap slice: redrawn without recomputing which nodes are
// visible.
type Style struct {
	Visualization style.Mode    `json:"visualization"`
	Theme         string        `json:"theme"`
	Selected      hierarchy.Ref `json:"selected"`
}

// ViewState is an immutable snapshot of everything the map is drawn from.
type ViewState struct {
	Layout    Layout          `json:"layout"`
	Style     Style           `json:"style"`
	Coupling  coupling.Config `json:"coupling"`
	DateRange tree.DateRange  `json:"date_range"`
}
