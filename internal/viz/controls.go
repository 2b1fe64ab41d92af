package viz

import (
	stderrors "errors"
	"math"

	"github.com/rohankatakam/codeviz/internal/geometry"
	"github.com/rohankatakam/codeviz/internal/scene"
	"github.com/rohankatakam/codeviz/internal/state"
)

// Ratio slider bounds.
const (
	MinCouplingRatio = 0.25
	MaxCouplingRatio = 1.0
	// ratioSteps is the number of slider steps per unit, a step of 0.01.
	ratioSteps = 100
)

// ErrNoCouplingData is returned by coupling controls when the dataset
// carries no coupling statistics.
var ErrNoCouplingData = stderrors.New("no coupling data")

func (e *Engine) send(a state.Action) {
	if e.dispatch == nil {
		return
	}
	e.logger.WithField("action", a.String()).Debug("dispatch")
	e.dispatch.Dispatch(a)
}

// Select dispatches a selection of the node at path. An unknown path clears
// the selection.
func (e *Engine) Select(path string) {
	if e.hier == nil {
		return
	}
	n, ok := e.hier.Lookup(path)
	if !ok {
		e.send(state.SelectNode{})
		return
	}
	e.send(state.SelectNode{Node: e.hier.Ref(n)})
}

// ClearSelection dispatches an empty selection.
func (e *Engine) ClearSelection() {
	e.send(state.SelectNode{})
}

// CouplingAvailable reports whether the dataset has coupling statistics.
func (e *Engine) CouplingAvailable() bool {
	return e.dataset != nil && e.dataset.CouplingAvailable()
}

// ToggleCoupling flips whether coupling edges are shown.
func (e *Engine) ToggleCoupling() error {
	if !e.CouplingAvailable() {
		return ErrNoCouplingData
	}
	shown := false
	if e.prev != nil {
		shown = e.prev.Coupling.Shown
	}
	e.send(state.SetShowCoupling{Shown: !shown})
	return nil
}

// SetMinRatio moves the ratio slider: the value is clamped to the slider
// range and snapped to its step before it is dispatched.
func (e *Engine) SetMinRatio(v float64) (float64, error) {
	if !e.CouplingAvailable() {
		return 0, ErrNoCouplingData
	}
	v = SnapRatio(v)
	e.send(state.SetMinCouplingRatio{Ratio: v})
	return v, nil
}

// SnapRatio clamps v to [MinCouplingRatio, MaxCouplingRatio] and rounds it
// to the slider step.
func SnapRatio(v float64) float64 {
	if math.IsNaN(v) {
		return MinCouplingRatio
	}
	v = math.Max(MinCouplingRatio, math.Min(MaxCouplingRatio, v))
	return math.Round(v*ratioSteps) / ratioSteps
}

// BrushEnd finishes a drag on the timescale over pixel interval sel; nil
// means the brush was cleared. It reports whether a new range was
// dispatched.
func (e *Engine) BrushEnd(sel *[2]float64) bool {
	if e.brush == nil {
		return false
	}
	_, changed := e.brush.End(sel)
	return changed
}

// Pan moves the map by (dx, dy).
func (e *Engine) Pan(dx, dy float64) geometry.Transform {
	if e.zoom == nil {
		return geometry.Identity
	}
	return e.zoom.Pan(dx, dy)
}

// Zoom scales the map by factor about p.
func (e *Engine) Zoom(p geometry.Point, factor float64) geometry.Transform {
	if e.zoom == nil {
		return geometry.Identity
	}
	return e.zoom.ZoomAt(p, factor)
}

// ResetZoom returns the map to the identity transform.
func (e *Engine) ResetZoom() geometry.Transform {
	if e.zoom == nil {
		return geometry.Identity
	}
	return e.zoom.Reset()
}

// Transform is the current map transform.
func (e *Engine) Transform() geometry.Transform {
	if e.zoom == nil {
		return geometry.Identity
	}
	return e.zoom.Transform()
}

// TimescaleView is the timescale strip with the brush at its current
// position, or nil when the dataset has no timescale.
func (e *Engine) TimescaleView() *scene.TimescaleView {
	if e.ts == nil || e.prev == nil {
		return nil
	}
	v := e.ts.View(e.brush.Selection(), e.prev.Layout.TimescaleHeight)
	v.AreaFill = e.palette.ParentFill
	return v
}
