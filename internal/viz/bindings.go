package viz

import (
	"github.com/rohankatakam/codeviz/internal/coupling"
	"github.com/rohankatakam/codeviz/internal/geometry"
	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/reconcile"
	"github.com/rohankatakam/codeviz/internal/scene"
	"github.com/rohankatakam/codeviz/internal/style"
)

// ArrowMarker is the marker id drawn at the target end of coupling edges.
const ArrowMarker = "arrow"

func nodeKey(n *hierarchy.Node) string { return n.Path() }

func (e *Engine) cellBinding(fill style.FillFunc) reconcile.Binding[*hierarchy.Node] {
	p := e.palette
	return reconcile.Binding[*hierarchy.Node]{
		Family: scene.FamilyCells,
		Kind:   scene.KindPolygon,
		Key:    nodeKey,
		Attrs: func(n *hierarchy.Node) scene.Attrs {
			return scene.Attrs{
				D:                geometry.PolygonPath(n.Data.Layout.Polygon),
				Fill:             fill(n),
				Stroke:           p.DefaultStroke,
				StrokeOpacity:    1,
				StrokeWidth:      style.CellStrokeWidth(n),
				NonScalingStroke: true,
				Title:            n.Path(),
			}
		},
		OnClick: e.cellClick,
	}
}

func (e *Engine) selectionBinding() reconcile.Binding[*hierarchy.Node] {
	p := e.palette
	return reconcile.Binding[*hierarchy.Node]{
		Family: scene.FamilySelection,
		Kind:   scene.KindPolygon,
		Key:    nodeKey,
		Attrs: func(n *hierarchy.Node) scene.Attrs {
			return scene.Attrs{
				D:                geometry.PolygonPath(n.Data.Layout.Polygon),
				Fill:             "none",
				Stroke:           p.SelectedStroke,
				StrokeOpacity:    1,
				StrokeWidth:      style.CellStrokeWidth(n),
				NonScalingStroke: true,
				Title:            n.Path(),
			}
		},
		OnClick: e.cellClick,
	}
}

func (e *Engine) couplingBinding() reconcile.Binding[coupling.Edge] {
	p := e.palette
	h := e.hier
	return reconcile.Binding[coupling.Edge]{
		Family: scene.FamilyCoupling,
		Kind:   scene.KindArc,
		Key:    coupling.Edge.Key,
		Attrs: func(edge coupling.Edge) scene.Attrs {
			ratio := edge.Ratio()
			source := edge.Source.Data.Center()
			target := source
			if t, ok := h.Lookup(edge.TargetFile); ok {
				target = t.Data.Center()
			}
			return scene.Attrs{
				D:                geometry.ArcPath(true, source, target),
				Fill:             "none",
				Stroke:           p.CouplingStroke,
				StrokeOpacity:    style.EdgeOpacity(ratio),
				StrokeWidth:      style.EdgeWidth(ratio),
				NonScalingStroke: true,
				MarkerEnd:        ArrowMarker,
				Title:            style.EdgeLabel(edge.Source.Path(), edge.TargetFile, ratio),
			}
		},
		OnClick: e.edgeClick,
	}
}

// cellClick selects the clicked cell. The path is looked up again at click
// time so an element that survived a rebuild selects the current node.
func (e *Engine) cellClick(n *hierarchy.Node) func() {
	path := n.Path()
	return func() { e.Select(path) }
}

// edgeClick selects the edge's source file.
func (e *Engine) edgeClick(edge coupling.Edge) func() {
	path := edge.Source.Path()
	return func() { e.Select(path) }
}
