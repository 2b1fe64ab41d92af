package viz

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/codeviz/internal/coupling"
	"github.com/rohankatakam/codeviz/internal/errors"
	"github.com/rohankatakam/codeviz/internal/geometry"
	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/metrics"
	"github.com/rohankatakam/codeviz/internal/reconcile"
	"github.com/rohankatakam/codeviz/internal/scene"
	"github.com/rohankatakam/codeviz/internal/state"
	"github.com/rohankatakam/codeviz/internal/style"
	"github.com/rohankatakam/codeviz/internal/timescale"
	"github.com/rohankatakam/codeviz/internal/tree"
	"github.com/rohankatakam/codeviz/internal/viewport"
)

// Options configure an Engine. Zero values fall back to defaults.
type Options struct {
	Themes   style.Themes
	MinScale float64
	MaxScale float64
	Logger   logrus.FieldLogger
	Metrics  *metrics.Collector
}

// PassResult describes what one render pass did.
type PassResult struct {
	Plan    Plan
	Skipped bool

	// Theme is the palette in effect. ThemeChanged asks the caller to
	// refresh anything page-wide derived from it, such as Background.
	Theme        string
	ThemeChanged bool
	Background   string

	Cells     reconcile.Counts
	Selection reconcile.Counts
	Coupling  reconcile.Counts
	Edges     int

	// Rebound is set when a stale selection was re-dispatched against the
	// rebuilt tree.
	Rebound  bool
	Duration time.Duration
}

// Engine runs one synchronous render pass per state transition. It never
// changes state itself; gestures become actions sent to the dispatcher.
type Engine struct {
	dataset  *tree.Dataset
	dispatch state.Dispatcher
	themes   style.Themes
	minScale float64
	maxScale float64
	logger   logrus.FieldLogger
	metrics  *metrics.Collector

	surface scene.Surface
	prev    *state.ViewState
	hier    *hierarchy.Hierarchy
	visible []*hierarchy.Node
	edges   []coupling.Edge
	palette style.Palette

	zoom  *viewport.Zoom
	ts    *timescale.Timescale
	brush *timescale.Brush
}

// New creates an engine for dataset. Nothing is drawn until a surface is
// attached and Render is called.
func New(dataset *tree.Dataset, dispatch state.Dispatcher, opts Options) *Engine {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	if opts.Themes == nil {
		opts.Themes = style.DefaultThemes()
	}
	return &Engine{
		dataset:  dataset,
		dispatch: dispatch,
		themes:   opts.Themes,
		minScale: opts.MinScale,
		maxScale: opts.MaxScale,
		logger:   opts.Logger.WithField("component", "viz"),
		metrics:  opts.Metrics,
	}
}

// Attach sets the render target.
func (e *Engine) Attach(s scene.Surface) {
	e.surface = s
}

// Hierarchy is the hierarchy built by the last full rebuild, or nil.
func (e *Engine) Hierarchy() *hierarchy.Hierarchy {
	return e.hier
}

// Visible is the visible node set of the last full rebuild. Restyle and
// coupling passes reuse the same slice.
func (e *Engine) Visible() []*hierarchy.Node {
	return e.visible
}

// Edges are the coupling edges drawn by the last pass that resolved them.
func (e *Engine) Edges() []coupling.Edge {
	return e.edges
}

// Render classifies the transition from the last rendered state to next and
// issues the minimal side effects on the surface.
//
// A missing surface or dataset is a lifecycle error and nothing is drawn. A
// surface that is attached but not ready yet skips the pass; the next
// Render classifies against the last state actually drawn.
func (e *Engine) Render(next state.ViewState) (*PassResult, error) {
	if e.surface == nil {
		return nil, errors.LifecycleError("render target is not attached")
	}
	if e.dataset == nil || e.dataset.Root == nil {
		return nil, errors.LifecycleError("no dataset loaded")
	}
	if !e.surface.Ready() {
		e.logger.Warn("render target not ready, skipping pass")
		if e.metrics != nil {
			e.metrics.SkippedPasses.Inc()
		}
		return &PassResult{Skipped: true}, nil
	}

	start := time.Now()
	plan := Classify(e.prev, next)
	if diff := changes(e.prev, next); diff != "" {
		e.logger.WithField("diff", diff).Trace("state changed")
	}

	// Everything that can fail is resolved before the first side effect.
	palette, err := e.themes.Get(next.Style.Theme)
	if err != nil {
		return nil, errors.ConfigError(err.Error()).WithContext("theme", next.Style.Theme)
	}
	var fill style.FillFunc
	if plan.Full || plan.Restyle {
		fill, err = style.NewFill(next.Style.Visualization, palette, e.dataset.Stats)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityHigh, "failed to build fill scale")
		}
	}

	res := &PassResult{
		Plan:         plan,
		Theme:        next.Style.Theme,
		ThemeChanged: plan.ThemeChanged || plan.Full,
		Background:   palette.Background,
	}
	e.palette = palette

	if plan.Full {
		e.rebuild(next)
	}

	var rebind *hierarchy.Ref
	if plan.Full || plan.Restyle {
		if plan.Restyle {
			e.logger.WithField("visualization", next.Style.Visualization).Debug("style change - restyle")
		}
		selected, stale := e.selectionPath(next.Style.Selected)
		if stale {
			r := e.hier.Rebind(next.Style.Selected)
			rebind = &r
		}
		res.Cells = reconcile.Apply(e.surface, e.cellBinding(fill), e.visible).Counts()
		res.Selection = reconcile.Apply(e.surface, e.selectionBinding(), selected).Counts()
	}

	switch {
	case plan.Full || plan.Coupling:
		if plan.Coupling {
			e.logger.WithFields(logrus.Fields{
				"shown":     next.Coupling.Shown,
				"min_ratio": next.Coupling.MinRatio,
			}).Debug("coupling change")
		}
		e.edges = coupling.Resolve(e.hier, next.DateRange, next.Coupling)
		res.Coupling = reconcile.Apply(e.surface, e.couplingBinding(), e.edges).Counts()
		e.surface.Raise(scene.FamilyCoupling)
		if e.brush != nil && (plan.Full || e.prev.DateRange != next.DateRange) {
			e.brush.Move(next.DateRange)
		}
	case plan.ThemeChanged:
		// Same edges, new stroke colour.
		res.Coupling = reconcile.Apply(e.surface, e.couplingBinding(), e.edges).Counts()
	}
	res.Edges = len(e.edges)

	e.prev = &next
	res.Duration = time.Since(start)
	e.record(res)

	if rebind != nil && e.dispatch != nil {
		res.Rebound = true
		e.dispatch.Dispatch(state.SelectNode{Node: *rebind})
	}
	return res, nil
}

// Resume adopts prev as the state already on the surface, as when a scene
// is restored from a saved session. The hierarchy, viewport and timescale
// are rebuilt without drawing, click handlers are bound again on surfaces
// that support it, and the returned state carries the selection rebound
// onto the new hierarchy.
func (e *Engine) Resume(prev state.ViewState, t geometry.Transform) (state.ViewState, error) {
	if e.surface == nil {
		return prev, errors.LifecycleError("render target is not attached")
	}
	if e.dataset == nil || e.dataset.Root == nil {
		return prev, errors.LifecycleError("no dataset loaded")
	}
	palette, err := e.themes.Get(prev.Style.Theme)
	if err != nil {
		return prev, errors.ConfigError(err.Error()).WithContext("theme", prev.Style.Theme)
	}
	e.palette = palette

	e.hier = hierarchy.Build(e.dataset.Root)
	e.visible = e.hier.Visible(prev.Layout.ClipDepth)
	e.edges = coupling.Resolve(e.hier, prev.DateRange, prev.Coupling)
	e.zoom = viewport.New(e.dataset.Bounds(), e.minScale, e.maxScale, e.surface.SetTransform)
	e.zoom.TransformTo(t)
	e.resetTimescale(prev)

	prev.Style.Selected = e.hier.Rebind(prev.Style.Selected)
	e.prev = &prev

	if b, ok := e.surface.(interface {
		Bind(f scene.Family, key string, onClick func()) bool
	}); ok {
		for _, n := range e.visible {
			b.Bind(scene.FamilyCells, n.Path(), e.cellClick(n))
		}
		for _, n := range hierarchy.SelectionPath(e.hier, prev.Style.Selected) {
			b.Bind(scene.FamilySelection, n.Path(), e.cellClick(n))
		}
		for _, edge := range e.edges {
			b.Bind(scene.FamilyCoupling, edge.Key(), e.edgeClick(edge))
		}
	}

	e.logger.WithFields(logrus.Fields{
		"visible": len(e.visible),
		"edges":   len(e.edges),
	}).Debug("resumed from saved state")
	return prev, nil
}

// rebuild replaces the hierarchy and everything derived from it.
func (e *Engine) rebuild(next state.ViewState) {
	e.hier = hierarchy.Build(e.dataset.Root)
	e.visible = e.hier.Visible(next.Layout.ClipDepth)
	e.logger.WithFields(logrus.Fields{
		"nodes":      e.hier.Len(),
		"visible":    len(e.visible),
		"clip_depth": next.Layout.ClipDepth,
	}).Debug("layout change - full rebuild")

	bounds := e.dataset.Bounds()
	e.surface.SetViewBox(bounds)
	current := geometry.Identity
	if e.zoom != nil {
		current = e.zoom.Transform()
	}
	e.zoom = viewport.New(bounds, e.minScale, e.maxScale, e.surface.SetTransform)
	e.zoom.TransformTo(current)

	e.resetTimescale(next)
}

func (e *Engine) resetTimescale(s state.ViewState) {
	e.ts, e.brush = nil, nil
	if len(e.dataset.Timescale) == 0 || s.Layout.TimescaleHeight <= 0 {
		return
	}
	e.ts = timescale.New(e.dataset.Timescale, s.Layout.Width, s.Layout.TimescaleHeight)
	e.brush = timescale.NewBrush(e.ts, s.DateRange, func(r tree.DateRange) {
		if e.dispatch != nil {
			e.dispatch.Dispatch(state.SetDateRange{Range: r})
		}
	})
}

// selectionPath resolves the selected ref against the current hierarchy.
// A ref minted against an earlier build is reported stale and treated as no
// selection.
func (e *Engine) selectionPath(ref hierarchy.Ref) ([]*hierarchy.Node, bool) {
	if ref.IsZero() {
		return nil, false
	}
	if _, ok := e.hier.Resolve(ref); !ok {
		e.logger.WithField("path", ref.Path).Debug("stale selection, clearing")
		return nil, true
	}
	return hierarchy.SelectionPath(e.hier, ref), false
}

func (e *Engine) record(res *PassResult) {
	e.logger.WithFields(logrus.Fields{
		"plan":     res.Plan.Kind(),
		"cells":    res.Cells,
		"edges":    res.Edges,
		"duration": res.Duration,
	}).Debug("render pass complete")

	if e.metrics == nil {
		return
	}
	e.metrics.RecordPass(res.Plan.Kind(), res.Duration)
	e.metrics.RecordOps(string(scene.FamilyCells), res.Cells.Enter, res.Cells.Update, res.Cells.Exit)
	e.metrics.RecordOps(string(scene.FamilySelection), res.Selection.Enter, res.Selection.Update, res.Selection.Exit)
	e.metrics.RecordOps(string(scene.FamilyCoupling), res.Coupling.Enter, res.Coupling.Update, res.Coupling.Exit)
	e.metrics.Edges.Set(float64(res.Edges))
}
