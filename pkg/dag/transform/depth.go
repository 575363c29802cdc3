package transform

import "github.com/cariskill/roadmap/pkg/dag"

// DepthResult is the outcome of [ResolveDepth].
type DepthResult struct {
	// Depths maps every node reachable from the root to its BFS rank.
	Depths map[string]int
	// VisitOrder lists reachable nodes in breadth-first discovery order.
	VisitOrder []string
	// Unreachable lists nodes with no path from the root, in insertion order.
	Unreachable []string
}

// ResolveDepth assigns each node its breadth-first distance from the graph
// root and records the discovery order on the graph.
//
// The root is at depth 0 and every discovered child is at parent depth + 1.
// Because BFS discovers a node through the shallowest parent first, a node
// with several parents ends up at 1 + min(parent depth); ties go to the
// parent scanned first. A node already visited is never revisited, so
// cycles terminate the branch instead of looping.
//
// Depths of unreachable nodes are left untouched. If the graph has no root,
// or the root is missing, every node is unreachable.
//
// Time complexity is O(V + E).
func ResolveDepth(g *dag.DAG) DepthResult {
	res := DepthResult{Depths: make(map[string]int, g.NodeCount())}

	root := g.Root()
	if _, ok := g.Node(root); ok {
		res.Depths[root] = 0
		res.VisitOrder = append(res.VisitOrder, root)
		queue := []string{root}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, child := range g.Children(curr) {
				if _, seen := res.Depths[child]; seen {
					continue
				}
				res.Depths[child] = res.Depths[curr] + 1
				res.VisitOrder = append(res.VisitOrder, child)
				queue = append(queue, child)
			}
		}
	}

	for _, id := range g.NodeIDs() {
		if _, ok := res.Depths[id]; !ok {
			res.Unreachable = append(res.Unreachable, id)
		}
	}

	g.SetDepths(res.Depths)
	g.SetVisitOrder(res.VisitOrder)
	return res
}
