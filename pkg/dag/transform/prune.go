package transform

import "github.com/cariskill/roadmap/pkg/dag"

// PruneUnreachable removes the given node IDs from g and returns copies of
// the removed nodes in the order given. Unknown IDs are skipped.
func PruneUnreachable(g *dag.DAG, ids []string) []dag.Node {
	removed := make([]dag.Node, 0, len(ids))
	for _, id := range ids {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		removed = append(removed, *n)
		g.RemoveNode(id)
	}
	return removed
}
