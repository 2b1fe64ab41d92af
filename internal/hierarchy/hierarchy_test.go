package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/codeviz/internal/hierarchy"
	"github.com/rohankatakam/codeviz/internal/tree/treetest"
)

func paths(nodes []*hierarchy.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Path()
	}
	return out
}

func TestBuild_BreadthFirst(t *testing.T) {
	h := hierarchy.Build(treetest.Sample())

	assert.Equal(t, 6, h.Len())
	assert.Equal(t, []string{
		"root",
		"root/src",
		"root/README.md",
		"root/src/main.go",
		"root/src/util",
		"root/src/util/strings.go",
	}, paths(h.Descendants()))

	strs, ok := h.Lookup("root/src/util/strings.go")
	require.True(t, ok)
	assert.Equal(t, 3, strs.Depth)
	assert.Equal(t, "root/src/util", h.Parent(strs).Path())
	assert.Nil(t, h.Parent(h.Root()))
	assert.Equal(t, []string{"root/src", "root/README.md"}, paths(h.Children(h.Root())))
}

func TestBuild_Empty(t *testing.T) {
	h := hierarchy.Build(nil)

	assert.Nil(t, h.Root())
	assert.Empty(t, h.Visible(3))
	assert.Empty(t, hierarchy.SelectionPath(h, hierarchy.Ref{Generation: h.Generation(), Path: "x"}))
}

func TestVisible(t *testing.T) {
	h := hierarchy.Build(treetest.Sample())

	tests := []struct {
		name  string
		depth int
		want  []string
	}{
		{"root only", 0, []string{"root"}},
		{"top level", 1, []string{"root/src", "root/README.md"}},
		{"clip at util", 2, []string{"root/README.md", "root/src/main.go", "root/src/util"}},
		{"everything", 3, []string{"root/README.md", "root/src/main.go", "root/src/util/strings.go"}},
		{"deeper than tree", 10, []string{"root/README.md", "root/src/main.go", "root/src/util/strings.go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths(h.Visible(tt.depth)))
		})
	}
}

func TestSelectionPath(t *testing.T) {
	h := hierarchy.Build(treetest.Sample())

	util, ok := h.Lookup("root/src/util")
	require.True(t, ok)

	got := hierarchy.SelectionPath(h, h.Ref(util))
	assert.Equal(t, []string{"root", "root/src", "root/src/util"}, paths(got))

	assert.Empty(t, hierarchy.SelectionPath(h, hierarchy.Ref{}))

	rootOnly := hierarchy.SelectionPath(h, h.Ref(h.Root()))
	assert.Equal(t, []string{"root"}, paths(rootOnly))
}

func TestSelectionPath_ThreeLevelChain(t *testing.T) {
	file := treetest.File("root/dir/file", 1, treetest.Square(0, 0, 1))
	dir := treetest.Dir("root/dir", treetest.Square(0, 0, 2), file)
	root := treetest.Dir("root", treetest.Square(0, 0, 3), dir)
	h := hierarchy.Build(root)

	n, ok := h.Lookup("root/dir/file")
	require.True(t, ok)
	assert.Equal(t, []string{"root", "root/dir", "root/dir/file"}, paths(hierarchy.SelectionPath(h, h.Ref(n))))
}

func TestStaleRefs(t *testing.T) {
	data := treetest.Sample()
	old := hierarchy.Build(data)
	rebuilt := hierarchy.Build(data)

	n, _ := old.Lookup("root/src/main.go")
	stale := old.Ref(n)

	assert.NotEqual(t, old.Generation(), rebuilt.Generation())

	_, ok := rebuilt.Resolve(stale)
	assert.False(t, ok, "a ref from an earlier build must not resolve")
	assert.Empty(t, hierarchy.SelectionPath(rebuilt, stale))

	fresh := rebuilt.Rebind(stale)
	assert.Equal(t, rebuilt.Generation(), fresh.Generation)
	resolved, ok := rebuilt.Resolve(fresh)
	require.True(t, ok)
	assert.Equal(t, "root/src/main.go", resolved.Path())

	assert.True(t, rebuilt.Rebind(hierarchy.Ref{Generation: 1, Path: "gone"}).IsZero())
	assert.True(t, rebuilt.Rebind(hierarchy.Ref{}).IsZero())
}
