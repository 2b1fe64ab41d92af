// Package hierarchy wraps a loaded tree in an index-addressed node table.
//
// Nodes refer to their parent and children by index into the table rather
// than by pointer, and data nodes never point back at their hierarchy node.
// Lookups by path go through the same table.
package hierarchy

import (
	"sync/atomic"

	"github.com/rohankatakam/codeviz/internal/tree"
)

// generations hands out a distinct stamp per Build so a Ref minted against
// one hierarchy never resolves against another.
var generations atomic.Uint64

// Ref identifies a node of one particular hierarchy build. The zero Ref
// means "nothing selected".
type Ref struct {
	Generation uint64 `json:"generation"`
	Path       string `json:"path"`
}

// IsZero reports whether the ref selects nothing.
func (r Ref) IsZero() bool {
	return r.Generation == 0
}

// Node is a tree node plus its position in the hierarchy.
type Node struct {
	Index    int
	Parent   int // -1 for the root
	Children []int
	Depth    int
	Data     *tree.Node
}

// Path is the data node's path.
func (n *Node) Path() string {
	return n.Data.Path
}

// IsParent reports whether the node has children.
func (n *Node) IsParent() bool {
	return len(n.Children) > 0
}

// Hierarchy is an immutable node table built from one tree snapshot.
type Hierarchy struct {
	generation uint64
	nodes      []Node
	byPath     map[string]int
}

// Build indexes the tree breadth first, so Descendants returns nodes in the
// same order a d3 hierarchy would.
func Build(root *tree.Node) *Hierarchy {
	h := &Hierarchy{
		generation: generations.Add(1),
		byPath:     make(map[string]int),
	}
	if root == nil {
		return h
	}

	h.nodes = append(h.nodes, Node{Index: 0, Parent: -1, Data: root})
	for i := 0; i < len(h.nodes); i++ {
		data := h.nodes[i].Data
		depth := h.nodes[i].Depth
		for _, c := range data.Children {
			idx := len(h.nodes)
			h.nodes = append(h.nodes, Node{Index: idx, Parent: i, Depth: depth + 1, Data: c})
			h.nodes[i].Children = append(h.nodes[i].Children, idx)
		}
	}

	for i := range h.nodes {
		p := h.nodes[i].Data.Path
		if _, dup := h.byPath[p]; !dup {
			h.byPath[p] = i
		}
	}
	return h
}

// Generation is the stamp carried by refs minted from this hierarchy.
func (h *Hierarchy) Generation() uint64 {
	return h.generation
}

// Len is the number of nodes.
func (h *Hierarchy) Len() int {
	return len(h.nodes)
}

// Root returns the root node, or nil for an empty hierarchy.
func (h *Hierarchy) Root() *Node {
	if len(h.nodes) == 0 {
		return nil
	}
	return &h.nodes[0]
}

// Parent returns n's parent, or nil for the root.
func (h *Hierarchy) Parent(n *Node) *Node {
	if n.Parent < 0 {
		return nil
	}
	return &h.nodes[n.Parent]
}

// Children returns n's children in tree order.
func (h *Hierarchy) Children(n *Node) []*Node {
	out := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		out[i] = &h.nodes[c]
	}
	return out
}

// Descendants returns every node, breadth first from the root.
func (h *Hierarchy) Descendants() []*Node {
	out := make([]*Node, len(h.nodes))
	for i := range h.nodes {
		out[i] = &h.nodes[i]
	}
	return out
}

// Lookup finds a node by path.
func (h *Hierarchy) Lookup(path string) (*Node, bool) {
	i, ok := h.byPath[path]
	if !ok {
		return nil, false
	}
	return &h.nodes[i], true
}

// Ref mints a reference to n valid for this hierarchy only.
func (h *Hierarchy) Ref(n *Node) Ref {
	return Ref{Generation: h.generation, Path: n.Path()}
}

// Resolve returns the node a ref points at. Zero refs, refs from another
// build and unknown paths all resolve to nothing.
func (h *Hierarchy) Resolve(r Ref) (*Node, bool) {
	if r.IsZero() || r.Generation != h.generation {
		return nil, false
	}
	return h.Lookup(r.Path)
}

// Rebind maps a ref from an earlier build onto this one by path. The zero
// Ref is returned when the path no longer exists.
func (h *Hierarchy) Rebind(r Ref) Ref {
	if r.IsZero() {
		return Ref{}
	}
	n, ok := h.Lookup(r.Path)
	if !ok {
		return Ref{}
	}
	return h.Ref(n)
}

// Visible returns the nodes drawn at the given clip depth: leaves at or
// above the clip, plus every node exactly at the clip. Parents above the
// clip are hidden behind their children.
func (h *Hierarchy) Visible(clipDepth int) []*Node {
	var out []*Node
	for i := range h.nodes {
		n := &h.nodes[i]
		if n.Depth > clipDepth {
			continue
		}
		if !n.IsParent() || n.Depth == clipDepth {
			out = append(out, n)
		}
	}
	return out
}
