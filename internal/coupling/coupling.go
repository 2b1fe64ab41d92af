// Package coupling flattens per-file temporal coupling summaries into the
// directed edge list drawn over the map.
package coupling

import (
	"strings"

	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/tree"
)

// Config holds the display thresholds for coupling edges.
type Config struct {
	Shown          bool    `json:"shown" mapstructure:"shown"`
	MinRatio       float64 `json:"min_ratio" mapstructure:"min_ratio"`
	MinDays        int     `json:"min_days" mapstructure:"min_days"`
	MaxCommonRoots int     `json:"max_common_roots" mapstructure:"max_common_roots"`
}

// Edge is a one-way coupling from a source file to a target file.
// TargetCount is the number of days both changed, SourceCount the number of
// days the source changed, both within the selected date range.
type Edge struct {
	Source      *hierarchy.Node
	TargetFile  string
	SourceCount int
	TargetCount int
}

// Ratio is TargetCount/SourceCount.
func (e Edge) Ratio() float64 {
	return float64(e.TargetCount) / float64(e.SourceCount)
}

// Key identifies the edge across render passes.
func (e Edge) Key() string {
	return EdgeKey(e.Source.Path(), e.TargetFile)
}

// EdgeKey builds the identity key for a source/target pair.
func EdgeKey(source, target string) string {
	return source + "|" + target
}

// Resolve walks the whole hierarchy, not just the visible nodes, and returns
// every edge that survives the thresholds. Edges are only ever produced from
// the source's own summary; a reverse edge needs the target's summary to
// qualify on its own. Targets missing from the hierarchy are dropped.
//
// The result is ordered by source (breadth first) then by first appearance
// of the target in the source's buckets, but callers should key on Edge.Key.
func Resolve(h *hierarchy.Hierarchy, dates tree.DateRange, cfg Config) []Edge {
	if !cfg.Shown {
		return nil
	}

	var edges []Edge
	for _, n := range h.Descendants() {
		if n.Data.Coupling == nil {
			continue
		}
		edges = append(edges, nodeEdges(h, n, dates, cfg)...)
	}
	return edges
}

func nodeEdges(h *hierarchy.Hierarchy, n *hierarchy.Node, dates tree.DateRange, cfg Config) []Edge {
	agg := Aggregate(n.Data.Coupling, dates)
	if agg.SourceCount == 0 || agg.SourceCount < cfg.MinDays {
		return nil
	}

	var edges []Edge
	for _, target := range agg.Targets {
		count := agg.Counts[target]
		e := Edge{
			Source:      n,
			TargetFile:  target,
			SourceCount: agg.SourceCount,
			TargetCount: count,
		}
		if e.Ratio() < cfg.MinRatio {
			continue
		}
		if cfg.MaxCommonRoots >= 0 && CommonRoots(n.Path(), target) > cfg.MaxCommonRoots {
			continue
		}
		if _, ok := h.Lookup(target); !ok {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// Aggregation is a summary restricted to a date range.
type Aggregation struct {
	SourceCount int
	Targets     []string // first-appearance order
	Counts      map[string]int
}

// Aggregate sums activity and co-change counts over every bucket that
// overlaps the range. Summing makes the resulting ratio a change-weighted
// average across buckets.
func Aggregate(summary *tree.CouplingSummary, dates tree.DateRange) Aggregation {
	agg := Aggregation{Counts: make(map[string]int)}
	if summary == nil {
		return agg
	}

	for _, b := range summary.Buckets {
		if !b.Overlaps(dates) {
			continue
		}
		agg.SourceCount += b.Activity
		for _, cf := range b.CoupledFiles {
			if _, seen := agg.Counts[cf.File]; !seen {
				agg.Targets = append(agg.Targets, cf.File)
			}
			agg.Counts[cf.File] += cf.Count
		}
	}
	return agg
}

// CommonRoots counts the leading directories two file paths share. File
// names themselves never count: "a/b/x.go" and "a/b/y.go" share 2.
func CommonRoots(a, b string) int {
	da := dirSegments(a)
	db := dirSegments(b)

	n := 0
	for n < len(da) && n < len(db) && da[n] == db[n] {
		n++
	}
	return n
}

func dirSegments(p string) []string {
	p = strings.Trim(p, "/")
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return nil
	}
	return strings.Split(p[:i], "/")
}
