package coupling

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/tree"
	"github.com/rohankatakam/codeviz/internal/tree/treetest"
)

var allTime = tree.DateRange{Earliest: 0, Latest: 1 << 40}

func permissive() Config {
	return Config{Shown: true, MinRatio: 0.25, MinDays: 1, MaxCommonRoots: -1}
}

func keys(edges []Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Key()
	}
	sort.Strings(out)
	return out
}

// pair builds root/{a,b}/x.go with a's summary pointing at b.
func pair(activity, coChanges int) *hierarchy.Hierarchy {
	a := treetest.File("root/a/x.go", 10, treetest.Square(0, 0, 10))
	b := treetest.File("root/b/y.go", 10, treetest.Square(20, 0, 10))
	treetest.Coupled(a, 100, 199, activity, map[string]int{"root/b/y.go": coChanges})
	root := treetest.Dir("root", treetest.Square(0, 0, 40),
		treetest.Dir("root/a", treetest.Square(0, 0, 10), a),
		treetest.Dir("root/b", treetest.Square(20, 0, 10), b),
	)
	return hierarchy.Build(root)
}

func TestResolve_RatioThreshold(t *testing.T) {
	h := pair(20, 18)

	cfg := permissive()
	cfg.MinRatio = 0.95
	assert.Empty(t, Resolve(h, allTime, cfg), "0.9 is below 0.95")

	cfg.MinRatio = 0.9
	edges := Resolve(h, allTime, cfg)
	require.Len(t, edges, 1)

	e := edges[0]
	assert.Equal(t, "root/a/x.go", e.Source.Path())
	assert.Equal(t, "root/b/y.go", e.TargetFile)
	assert.Equal(t, 20, e.SourceCount)
	assert.Equal(t, 18, e.TargetCount)
	assert.InDelta(t, 0.9, e.Ratio(), 1e-12)
	assert.Equal(t, "root/a/x.go|root/b/y.go", e.Key())
}

func TestResolve_Hidden(t *testing.T) {
	h := pair(20, 18)

	cfg := permissive()
	cfg.Shown = false
	assert.Empty(t, Resolve(h, allTime, cfg))
}

func TestResolve_MinDays(t *testing.T) {
	h := pair(20, 18)

	cfg := permissive()
	cfg.MinDays = 21
	assert.Empty(t, Resolve(h, allTime, cfg))

	cfg.MinDays = 20
	assert.Len(t, Resolve(h, allTime, cfg), 1)
}

func TestResolve_CommonRoots(t *testing.T) {
	h := pair(20, 18)

	// root/a/x.go and root/b/y.go share only "root"
	cfg := permissive()
	cfg.MaxCommonRoots = 0
	assert.Empty(t, Resolve(h, allTime, cfg))

	cfg.MaxCommonRoots = 1
	assert.Len(t, Resolve(h, allTime, cfg), 1)
}

func TestResolve_DateRange(t *testing.T) {
	h := pair(20, 18)

	assert.Len(t, Resolve(h, tree.DateRange{Earliest: 150, Latest: 160}, permissive()), 1)
	assert.Empty(t, Resolve(h, tree.DateRange{Earliest: 200, Latest: 300}, permissive()))
}

func TestResolve_OneWayOnly(t *testing.T) {
	// b has its own summary but it does not meet the ratio
	a := treetest.File("root/a.go", 10, treetest.Square(0, 0, 10))
	b := treetest.File("root/b.go", 10, treetest.Square(20, 0, 10))
	treetest.Coupled(a, 0, 99, 10, map[string]int{"root/b.go": 10})
	treetest.Coupled(b, 0, 99, 100, map[string]int{"root/a.go": 10})
	h := hierarchy.Build(treetest.Dir("root", treetest.Square(0, 0, 40), a, b))

	cfg := permissive()
	cfg.MinRatio = 0.5
	assert.Equal(t, []string{"root/a.go|root/b.go"}, keys(Resolve(h, allTime, cfg)))

	// once b qualifies independently, both directions appear
	cfg.MinRatio = 0.1
	assert.Equal(t, []string{"root/a.go|root/b.go", "root/b.go|root/a.go"}, keys(Resolve(h, allTime, cfg)))
}

func TestResolve_MissingTargetDropped(t *testing.T) {
	a := treetest.File("root/a.go", 10, treetest.Square(0, 0, 10))
	treetest.Coupled(a, 0, 99, 10, map[string]int{"root/deleted.go": 9, "root/b.go": 9})
	b := treetest.File("root/b.go", 10, treetest.Square(20, 0, 10))
	h := hierarchy.Build(treetest.Dir("root", treetest.Square(0, 0, 40), a, b))

	assert.Equal(t, []string{"root/a.go|root/b.go"}, keys(Resolve(h, allTime, permissive())))
}

func TestResolve_IncludesNodesBelowClip(t *testing.T) {
	h := hierarchy.Build(treetest.Sample())
	strs, _ := h.Lookup("root/src/util/strings.go")
	treetest.Coupled(strs.Data, 0, 99, 4, map[string]int{"root/README.md": 4})

	edges := Resolve(h, allTime, permissive())
	require.Len(t, edges, 1)
	assert.Equal(t, 3, edges[0].Source.Depth)
}

func TestAggregate_SumsOverlappingBuckets(t *testing.T) {
	summary := &tree.CouplingSummary{Buckets: []tree.Bucket{
		{Start: 0, End: 99, Activity: 10, CoupledFiles: []tree.CoupledFile{{File: "x", Count: 5}, {File: "y", Count: 2}}},
		{Start: 100, End: 199, Activity: 30, CoupledFiles: []tree.CoupledFile{{File: "x", Count: 25}}},
		{Start: 200, End: 299, Activity: 99, CoupledFiles: []tree.CoupledFile{{File: "z", Count: 99}}},
	}}

	agg := Aggregate(summary, tree.DateRange{Earliest: 50, Latest: 150})
	assert.Equal(t, 40, agg.SourceCount)
	assert.Equal(t, []string{"x", "y"}, agg.Targets)
	assert.Equal(t, 30, agg.Counts["x"])
	assert.Equal(t, 2, agg.Counts["y"])
	assert.NotContains(t, agg.Counts, "z")

	empty := Aggregate(nil, allTime)
	assert.Zero(t, empty.SourceCount)
}

func TestCommonRoots(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a/b/x.go", "a/b/y.go", 2},
		{"a/b/x.go", "a/c/y.go", 1},
		{"a/x.go", "b/y.go", 0},
		{"x.go", "y.go", 0},
		{"a/b/c/x.go", "a/b/y.go", 2},
		{"/a/b/x.go", "a/b/y.go", 2},
		// a file named like a directory is not a shared root
		{"a/b", "a/b/y.go", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonRoots(tt.a, tt.b))
			assert.Equal(t, tt.want, CommonRoots(tt.b, tt.a))
		})
	}
}
