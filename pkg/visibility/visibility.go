package visibility

import (
	"maps"

	"github.com/cariskill/roadmap/pkg/dag"
)

// CollapseState is the live per-node collapse flag owned by the viewer.
// Absent IDs are expanded. Treat a CollapseState as a value: [CollapseState.Toggle]
// returns a new state and never changes the receiver.
type CollapseState map[string]bool

// Collapsed reports whether id is collapsed.
func (s CollapseState) Collapsed(id string) bool { return s[id] }

// Toggle returns a copy of s with the flag of id flipped. No other node's
// flag changes.
func (s CollapseState) Toggle(id string) CollapseState {
	next := maps.Clone(s)
	if next == nil {
		next = CollapseState{}
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	return next
}

// Result is the visible part of a graph.
type Result struct {
	// Nodes and Edges keep graph insertion order.
	Nodes []dag.Node
	Edges []dag.Edge
	// Hidden holds every ID removed by a collapsed ancestor.
	Hidden map[string]bool
}

// IsVisible reports whether id survived the reduction.
func (r Result) IsVisible(id string) bool { return !r.Hidden[id] }

// Compute hides every transitive descendant of each collapsed node and
// returns what is left. A collapsed node stays visible itself unless some
// other collapsed node hides it. Edges touching a hidden node are dropped.
func Compute(g *dag.DAG, state CollapseState) Result {
	hidden := make(map[string]bool)
	for _, id := range g.NodeIDs() {
		if state.Collapsed(id) {
			markDescendants(g, id, hidden)
		}
	}

	res := Result{Hidden: hidden}
	for _, n := range g.Nodes() {
		if !hidden[n.ID] {
			res.Nodes = append(res.Nodes, *n)
		}
	}
	for _, e := range g.Edges() {
		if !hidden[e.From] && !hidden[e.To] {
			res.Edges = append(res.Edges, e)
		}
	}
	return res
}

// Descendants returns every node reachable from id, excluding id itself, in
// depth-first discovery order.
func Descendants(g *dag.DAG, id string) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(string)
	walk = func(curr string) {
		for _, child := range g.Children(curr) {
			if child == id || seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			walk(child)
		}
	}
	walk(id)
	return out
}

// markDescendants hides the subtree under id. A node already hidden is not
// walked again, which keeps shared subtrees linear.
func markDescendants(g *dag.DAG, id string, hidden map[string]bool) {
	stack := []string{id}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range g.Children(curr) {
			if child == id || hidden[child] {
				continue
			}
			hidden[child] = true
			stack = append(stack, child)
		}
	}
}

// Apply writes Collapsible (has children) and Collapsed onto the nodes of g.
func Apply(g *dag.DAG, state CollapseState) {
	for _, n := range g.Nodes() {
		n.Collapsible = len(g.Children(n.ID)) > 0
		n.Collapsed = n.Collapsible && state.Collapsed(n.ID)
	}
}
