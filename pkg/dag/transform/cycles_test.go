package transform

import (
	"testing"

	"github.com/cariskill/roadmap/pkg/dag"
)

func buildGraph(root string, ids []string, edges [][2]string) *dag.DAG {
	g := dag.New()
	for _, id := range ids {
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	g.SetRoot(root)
	return g
}

func TestFindCycles_NoCycles(t *testing.T) {
	g := buildGraph("a", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	if got := FindCycles(g); len(got) != 0 {
		t.Errorf("FindCycles() = %v, want none", got)
	}
}

func TestFindCycles_SimpleCycle(t *testing.T) {
	g := buildGraph("a", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})

	got := FindCycles(g)
	if len(got) != 1 {
		t.Fatalf("FindCycles() found %d back edges, want 1", len(got))
	}
	if got[0].From != "b" || got[0].To != "a" {
		t.Errorf("back edge = %s→%s, want b→a", got[0].From, got[0].To)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2 (graph must not be modified)", g.EdgeCount())
	}
}

func TestFindCycles_TriangleCycle(t *testing.T) {
	g := buildGraph("a", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	if got := FindCycles(g); len(got) != 1 {
		t.Errorf("FindCycles() found %d back edges, want 1", len(got))
	}
}

func TestFindCycles_MultipleCycles(t *testing.T) {
	// Two separate cycles: a↔b and c↔d, the second unreachable from the root
	g := buildGraph("a", []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}})

	if got := FindCycles(g); len(got) != 2 {
		t.Errorf("FindCycles() found %d back edges, want 2", len(got))
	}
}

func TestFindCycles_SelfLoop(t *testing.T) {
	g := buildGraph("a", []string{"a"}, [][2]string{{"a", "a"}})

	if got := FindCycles(g); len(got) != 1 {
		t.Errorf("FindCycles() found %d back edges, want 1", len(got))
	}
}

func TestFindCycles_DiamondNoCycle(t *testing.T) {
	//   a
	//  / \
	// b   c
	//  \ /
	//   d
	g := buildGraph("a", []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}})

	if got := FindCycles(g); len(got) != 0 {
		t.Errorf("FindCycles() = %v, want none", got)
	}
}

func TestFindCycles_EmptyGraph(t *testing.T) {
	if got := FindCycles(dag.New()); len(got) != 0 {
		t.Errorf("FindCycles() = %v, want none", got)
	}
}
