package transform

import "github.com/cariskill/roadmap/pkg/dag"

// FindCycles returns the back edges that close a directed cycle.
//
// The scan is a white/gray/black depth-first search that starts at the root
// and then continues from every still-unvisited node in insertion order, so
// the result is deterministic. Diamonds (two paths to the same node) are not
// cycles and are not reported. The graph is not modified: the engine keeps
// cyclic edges and relies on visited-marking to terminate traversals.
func FindCycles(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var backEdges []dag.Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, dag.Edge{From: node, To: child})
			}
		}
		color[node] = black
	}

	if _, ok := g.Node(g.Root()); ok {
		dfs(g.Root())
	}
	for _, id := range g.NodeIDs() {
		if color[id] == white {
			dfs(id)
		}
	}
	return backEdges
}
