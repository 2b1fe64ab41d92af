package tree

import (
	"github.com/rohankatakam/codeviz/internal/geometry"
)

// Layout algorithms that affect rendering.
const (
	AlgorithmVoronoi    = "voronoi"
	AlgorithmCirclePack = "circlePack"
)

// Layout is the externally computed geometry for one node.
type Layout struct {
	Algorithm string           `json:"algorithm"`
	Polygon   []geometry.Point `json:"polygon"`
	Center    *geometry.Point  `json:"center,omitempty"`
	Width     float64          `json:"width,omitempty"`
	Height    float64          `json:"height,omitempty"`
}

// Node is one file or directory in the codebase map. Nodes are immutable
// once loaded; a new snapshot replaces the whole tree.
type Node struct {
	Name        string           `json:"name"`
	Path        string           `json:"path"`
	Value       float64          `json:"value"`
	Indentation float64          `json:"indentation,omitempty"`
	Layout      Layout           `json:"layout"`
	Children    []*Node          `json:"children,omitempty"`
	Coupling    *CouplingSummary `json:"coupling,omitempty"`
}

// IsParent reports whether the node is a directory with children.
func (n *Node) IsParent() bool {
	return len(n.Children) > 0
}

// Center is the anchor used for coupling edges: the layout's explicit
// centre when present, otherwise the polygon centroid.
func (n *Node) Center() geometry.Point {
	if n.Layout.Center != nil {
		return *n.Layout.Center
	}
	return geometry.Centroid(n.Layout.Polygon)
}

// CouplingSummary holds bucketed co-change counts for one file.
type CouplingSummary struct {
	Buckets []Bucket `json:"buckets"`
}

// Bucket is one fixed-length time window of co-change counts.
// Activity is the number of days the owning file changed in the window.
type Bucket struct {
	Start        int64         `json:"bucket_start"`
	End          int64         `json:"bucket_end"`
	Activity     int           `json:"activity"`
	CoupledFiles []CoupledFile `json:"coupled_files"`
}

// CoupledFile counts the days another file changed alongside the owner.
type CoupledFile struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}

// Overlaps reports whether the bucket intersects the closed range.
func (b Bucket) Overlaps(r DateRange) bool {
	return b.Start <= r.Latest && b.End >= r.Earliest
}

// DateRange is a closed interval of unix timestamps (seconds).
type DateRange struct {
	Earliest int64 `json:"earliest"`
	Latest   int64 `json:"latest"`
}

// Stats are global figures used as colour scale domains.
type Stats struct {
	MaxValue       float64 `json:"max_value"`
	MaxDepth       float64 `json:"max_depth"`
	MaxIndentation float64 `json:"max_indentation"`
}

// CouplingStats describes how coupling buckets were produced.
type CouplingStats struct {
	BucketCount      int   `json:"bucket_count"`
	BucketSize       int64 `json:"bucket_size"`
	FirstBucketStart int64 `json:"first_bucket_start"`
}

// BucketDays is the bucket length in days.
func (c CouplingStats) BucketDays() float64 {
	return float64(c.BucketSize) / (24 * 60 * 60)
}

// Day is one point of the commit timescale.
type Day struct {
	Day     int64 `json:"day"`
	Commits int   `json:"commits"`
}
