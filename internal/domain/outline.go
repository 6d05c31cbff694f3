package domain

// OutlineNode is a browsable node rebuilt from a flattened inventory
type OutlineNode struct {
	Record
	Children   []*OutlineNode
	IsExpanded bool
	Parent     *OutlineNode
}

// BuildOutline rebuilds the category tree from pre-order records.
// The returned root is synthetic (level 0) and always expanded.
// A record whose level jumps by more than one is attached to the deepest open node.
func BuildOutline(root string, records []Record) *OutlineNode {
	top := &OutlineNode{
		Record:     Record{Name: root, Level: 0},
		IsExpanded: true,
	}

	stack := []*OutlineNode{top}
	for _, r := range records {
		for len(stack) > 1 && stack[len(stack)-1].Level >= r.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		node := &OutlineNode{Record: r, Parent: parent}
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	return top
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *OutlineNode) Flatten() []*OutlineNode {
	var result []*OutlineNode
	n.flattenRecursive(&result)
	return result
}

func (n *OutlineNode) flattenRecursive(result *[]*OutlineNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *OutlineNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// HasChildren reports whether the node can be expanded
func (n *OutlineNode) HasChildren() bool {
	return len(n.Children) > 0
}

// Toggle expands or collapses the node
func (n *OutlineNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *OutlineNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *OutlineNode) Collapse() {
	n.IsExpanded = false
}

// Reveal expands every ancestor so the node becomes visible
func (n *OutlineNode) Reveal() {
	for p := n.Parent; p != nil; p = p.Parent {
		p.IsExpanded = true
	}
}

// Find returns the first node with the given name, searching depth-first
func (n *OutlineNode) Find(name string) *OutlineNode {
	if n.Name == name && n.Parent != nil {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Path returns the names from the first level down to this node
func (n *OutlineNode) Path() []string {
	var path []string
	for current := n; current != nil && current.Parent != nil; current = current.Parent {
		path = append([]string{current.Name}, path...)
	}
	return path
}
