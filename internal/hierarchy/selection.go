package hierarchy

// SelectionPath returns the nodes from the root down to the selected node,
// inclusive. It is empty when nothing is selected or the ref belongs to a
// different build of the tree.
func SelectionPath(h *Hierarchy, selected Ref) []*Node {
	n, ok := h.Resolve(selected)
	if !ok {
		return nil
	}

	var path []*Node
	for n != nil {
		path = append(path, n)
		n = h.Parent(n)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
