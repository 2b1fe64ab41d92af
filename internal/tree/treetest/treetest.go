// Package treetest builds small trees for tests.
package treetest

import (
	"path"

	"github.com/rohankatakam/codeviz/internal/geometry"
	"github.com/rohankatakam/codeviz/internal/tree"
)

// Square is an axis-aligned square polygon with its corner at (x, y).
func Square(x, y, size float64) []geometry.Point {
	return []geometry.Point{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}}
}

// File builds a leaf node.
func File(p string, value float64, poly []geometry.Point) *tree.Node {
	return &tree.Node{
		Name:   path.Base(p),
		Path:   p,
		Value:  value,
		Layout: tree.Layout{Algorithm: tree.AlgorithmVoronoi, Polygon: poly},
	}
}

// Dir builds a directory node.
func Dir(p string, poly []geometry.Point, children ...*tree.Node) *tree.Node {
	var total float64
	for _, c := range children {
		total += c.Value
	}
	return &tree.Node{
		Name:     path.Base(p),
		Path:     p,
		Value:    total,
		Layout:   tree.Layout{Algorithm: tree.AlgorithmVoronoi, Polygon: poly},
		Children: children,
	}
}

// Coupled attaches a single-bucket coupling summary to n and returns it.
// targets maps file path to co-change count.
func Coupled(n *tree.Node, start, end int64, activity int, targets map[string]int) *tree.Node {
	b := tree.Bucket{Start: start, End: end, Activity: activity}
	for f, c := range targets {
		b.CoupledFiles = append(b.CoupledFiles, tree.CoupledFile{File: f, Count: c})
	}
	if n.Coupling == nil {
		n.Coupling = &tree.CouplingSummary{}
	}
	n.Coupling.Buckets = append(n.Coupling.Buckets, b)
	return n
}

// Sample is a small project:
//
//	root
//	├── src
//	│   ├── main.go
//	│   └── util
//	│       └── strings.go
//	└── README.md
func Sample() *tree.Node {
	strs := File("root/src/util/strings.go", 40, Square(10, 50, 10))
	util := Dir("root/src/util", Square(10, 50, 20), strs)
	main := File("root/src/main.go", 120, Square(0, 0, 50))
	src := Dir("root/src", Square(0, 0, 100), main, util)
	readme := File("root/README.md", 10, Square(100, 0, 20))
	root := Dir("root", Square(-100, -100, 400), src, readme)
	root.Layout.Width = 400
	root.Layout.Height = 400
	return root
}
