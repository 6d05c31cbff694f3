package domain

// Aggregate computes total file counts for every node reachable from tree.
// Children are summed before their parent. The totals are also stored on
// each node's TotalFiles and DirectFiles fields.
func Aggregate(tree []*CategoryNode, direct map[string]int) map[string]int {
	totals := make(map[string]int)
	for _, node := range tree {
		aggregateNode(node, direct, totals)
	}
	return totals
}

func aggregateNode(node *CategoryNode, direct map[string]int, totals map[string]int) int {
	node.DirectFiles = direct[node.Name]
	total := node.DirectFiles
	for _, child := range node.Children {
		total += aggregateNode(child, direct, totals)
	}
	node.TotalFiles = total
	totals[node.Name] = total
	return total
}

// Flatten walks tree in pre-order and emits one record per node.
// Sibling order is taken as built; names missing from totals get 0 files.
func Flatten(tree []*CategoryNode, totals map[string]int) []Record {
	records := make([]Record, 0, Count(tree))
	Walk(tree, func(node *CategoryNode) {
		records = append(records, Record{
			Name:       node.Name,
			Level:      node.Level,
			Files:      totals[node.Name],
			Incomplete: node.Incomplete,
		})
	})
	return records
}

// Walk calls fn for every node in pre-order
func Walk(tree []*CategoryNode, fn func(*CategoryNode)) {
	for _, node := range tree {
		fn(node)
		Walk(node.Children, fn)
	}
}

// Count returns the number of nodes in tree
func Count(tree []*CategoryNode) int {
	n := 0
	Walk(tree, func(*CategoryNode) { n++ })
	return n
}

// Depth returns the deepest level present in tree, 0 for an empty tree
func Depth(tree []*CategoryNode) int {
	deepest := 0
	Walk(tree, func(node *CategoryNode) {
		deepest = max(deepest, node.Level)
	})
	return deepest
}
