// Package scene defines the render surface the reconciliation engine draws
// on, and an in-memory implementation that can be written out as SVG.
package scene

import "github.com/rohankatakam/codeviz/internal/geometry"

// Family is an independently keyed group of visual elements.
type Family string

const (
	FamilyCells     Family = "cell"
	FamilySelection Family = "selected"
	FamilyCoupling  Family = "coupling"
)

// Kind is the primitive an element is drawn with.
type Kind string

const (
	KindPolygon Kind = "polygon"
	KindArc     Kind = "arc"
)

// Attrs are the geometry and style of one element.
type Attrs struct {
	D                string  `json:"d"`
	Fill             string  `json:"fill"`
	Stroke           string  `json:"stroke"`
	StrokeOpacity    float64 `json:"stroke_opacity"`
	StrokeWidth      float64 `json:"stroke_width"`
	NonScalingStroke bool    `json:"non_scaling_stroke"`
	MarkerEnd        string  `json:"marker_end,omitempty"`
	Title            string  `json:"title,omitempty"`
}

// Surface is where render passes issue their side effects. Only the
// reconciliation engine mutates a family's elements.
type Surface interface {
	// Ready reports whether the surface can be drawn on yet.
	Ready() bool
	// Keys lists the keys currently present in a family.
	Keys(f Family) []string
	// Append creates an element; onClick is invoked when it is clicked.
	Append(f Family, key string, kind Kind, onClick func())
	// Update replaces an element's attributes.
	Update(f Family, key string, attrs Attrs)
	// Remove deletes an element.
	Remove(f Family, key string)
	// Raise draws a family above every other family.
	Raise(f Family)
	SetViewBox(b geometry.Box)
	SetTransform(t geometry.Transform)
}
