package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a): %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) again = %v, want ErrDuplicateNodeID", err)
	}
	n, ok := g.Node("a")
	if !ok || n.Meta == nil {
		t.Errorf("Node(a) = %v, %v; want node with non-nil Meta", n, ok)
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"UnknownSource", Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{"UnknownTarget", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
		{"Valid", Edge{From: "a", To: "b"}, nil},
		{"Duplicate", Edge{From: "a", To: "b"}, ErrDuplicateEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge(%v) = %v, want %v", tt.edge, err, tt.want)
			}
		})
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestPrerequisitesExcludeSynthetic(t *testing.T) {
	g := New()
	for _, id := range []string{"topic", "a", "b"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "topic", To: "a", Synthetic: true})
	_ = g.AddEdge(Edge{From: "topic", To: "b", Synthetic: true})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	if got := g.Prerequisites("a"); len(got) != 0 {
		t.Errorf("Prerequisites(a) = %v, want none", got)
	}
	if got := g.Prerequisites("b"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Prerequisites(b) = %v, want [a]", got)
	}
	if got := g.Parents("b"); !slices.Equal(got, []string{"topic", "a"}) {
		t.Errorf("Parents(b) = %v, want [topic a]", got)
	}
	m := g.PrerequisiteMap()
	if len(m) != 1 {
		t.Errorf("PrerequisiteMap() has %d entries, want 1", len(m))
	}
}

func TestNodesKeepInsertionOrder(t *testing.T) {
	g := New()
	want := []string{"z", "a", "m", "b"}
	for _, id := range want {
		_ = g.AddNode(Node{ID: id})
	}
	if got := NodeIDs(g.Nodes()); !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
}

func TestRemoveNode(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "c"})
	g.SetVisitOrder([]string{"a", "b", "c"})

	g.RemoveNode("b")

	if g.NodeCount() != 2 || g.EdgeCount() != 0 {
		t.Errorf("after RemoveNode: nodes=%d edges=%d, want 2 and 0", g.NodeCount(), g.EdgeCount())
	}
	if len(g.Children("a")) != 0 || len(g.Prerequisites("c")) != 0 {
		t.Error("adjacency still references removed node")
	}
	if g.HasEdge("a", "b") {
		t.Error("HasEdge(a, b) = true after removal")
	}
	if got := g.VisitOrder(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("VisitOrder() = %v, want [a c]", got)
	}
	// Re-adding the edge pair must work once both ends exist again.
	_ = g.AddNode(Node{ID: "b"})
	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Errorf("AddEdge after re-adding node: %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a", Meta: Metadata{"k": "v"}})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	g.SetRoot("a")

	c := g.Clone()
	n, _ := c.Node("a")
	n.Status = StatusCompleted
	n.Meta["k"] = "changed"
	_ = c.AddNode(Node{ID: "c"})
	_ = c.AddEdge(Edge{From: "b", To: "c"})

	orig, _ := g.Node("a")
	if orig.Status != StatusLocked || orig.Meta["k"] != "v" {
		t.Errorf("original node mutated through clone: %+v", orig)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("original graph grew: nodes=%d edges=%d", g.NodeCount(), g.EdgeCount())
	}
	if c.Root() != "a" {
		t.Errorf("clone Root() = %q, want a", c.Root())
	}
}

func TestDepthQueries(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "r", Depth: 0})
	_ = g.AddNode(Node{ID: "x", Depth: 2})
	_ = g.AddNode(Node{ID: "y", Depth: 1})
	_ = g.AddNode(Node{ID: "z", Depth: 2})

	if got := g.Depths(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("Depths() = %v, want [0 1 2]", got)
	}
	if got := NodeIDs(g.NodesAtDepth(2)); !slices.Equal(got, []string{"x", "z"}) {
		t.Errorf("NodesAtDepth(2) = %v, want [x z]", got)
	}
	if g.MaxDepth() != 2 {
		t.Errorf("MaxDepth() = %d, want 2", g.MaxDepth())
	}
	g.SetDepths(map[string]int{"x": 1, "missing": 4})
	if n, _ := g.Node("x"); n.Depth != 1 {
		t.Errorf("x.Depth = %d, want 1", n.Depth)
	}
}

func TestKindAndStatusText(t *testing.T) {
	for _, k := range []Kind{KindRoot, KindCategory, KindTopic, KindSkill} {
		b, _ := k.MarshalText()
		var got Kind
		if err := got.UnmarshalText(b); err != nil || got != k {
			t.Errorf("Kind round trip %v: got %v, err %v", k, got, err)
		}
	}
	var s Status
	if err := s.UnmarshalText([]byte("in-progress")); err != nil || s != StatusInProgress {
		t.Errorf("UnmarshalText(in-progress) = %v, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) succeeded, want error")
	}
	if !KindRoot.IsSynthetic() || KindTopic.IsSynthetic() {
		t.Error("IsSynthetic classification wrong")
	}
}

func TestCountCrossings(t *testing.T) {
	g := New()
	for _, id := range []string{"t", "a", "b", "a1", "b1"} {
		_ = g.AddNode(Node{ID: id})
	}
	for _, e := range [][2]string{{"t", "a"}, {"t", "b"}, {"a", "a1"}, {"b", "b1"}} {
		_ = g.AddEdge(Edge{From: e[0], To: e[1]})
	}

	tests := []struct {
		name  string
		ranks map[int][]string
		want  int
	}{
		{"aligned", map[int][]string{0: {"t"}, 1: {"a", "b"}, 2: {"a1", "b1"}}, 0},
		{"swapped", map[int][]string{0: {"t"}, 1: {"a", "b"}, 2: {"b1", "a1"}}, 1},
		{"gap", map[int][]string{0: {"t"}, 2: {"b1", "a1"}}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountCrossings(g, tt.ranks); got != tt.want {
				t.Errorf("CountCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}
