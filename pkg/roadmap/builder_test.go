package roadmap

import (
	"slices"
	"testing"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/normalize"
)

func TestBuild_SyntheticRoots(t *testing.T) {
	nodes := []NodeRecord{
		{ID: "a", Title: "A", Depth: 1},
		{ID: "b", Title: "B", Depth: 2},
	}
	edges := []EdgeRecord{{Source: "a", Target: "b"}}

	g, diag := Build(nodes, edges, Options{SubjectLabel: "Go"})

	if !diag.Empty() {
		t.Errorf("diagnostics = %v, want none", diag.Warnings())
	}
	if g.Root() != RootID {
		t.Errorf("Root() = %q, want %q", g.Root(), RootID)
	}
	if !g.HasEdge(RootID, TopicID) || !g.HasEdge(TopicID, "a") {
		t.Error("missing synthetic root→topic→a wiring")
	}
	if g.HasEdge(TopicID, "b") {
		t.Error("topic wired to depth-2 record")
	}

	root, _ := g.Node(RootID)
	if root.Kind != dag.KindRoot || root.Label != DefaultLearnerLabel || root.Depth != 0 {
		t.Errorf("root = %+v", root)
	}
	topic, _ := g.Node(TopicID)
	if topic.Kind != dag.KindCategory || topic.Label != "Go" {
		t.Errorf("topic = %+v", topic)
	}

	wantDepth := map[string]int{RootID: 0, TopicID: 1, "a": 2, "b": 3}
	for id, want := range wantDepth {
		n, _ := g.Node(id)
		if n.Depth != want {
			t.Errorf("depth(%s) = %d, want %d", id, n.Depth, want)
		}
	}
}

func TestBuild_PrerequisitesExcludeSynthetic(t *testing.T) {
	nodes := []NodeRecord{{ID: "a", Depth: 1}, {ID: "b", Depth: 2}}
	edges := []EdgeRecord{{Source: "a", Target: "b"}}

	g, _ := Build(nodes, edges, DefaultOptions())

	if got := g.Prerequisites("a"); len(got) != 0 {
		t.Errorf("Prerequisites(a) = %v, want none", got)
	}
	if got := g.Prerequisites("b"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Prerequisites(b) = %v, want [a]", got)
	}
	if got := g.Prerequisites(TopicID); len(got) != 0 {
		t.Errorf("Prerequisites(topic) = %v, want none", got)
	}
}

func TestBuild_DuplicateLastWriteWins(t *testing.T) {
	nodes := []NodeRecord{
		{ID: "a", Title: "first", Depth: 1},
		{ID: "b", Title: "B", Depth: 1},
		{ID: "a", Title: "second", Depth: 1},
	}

	g, diag := Build(nodes, nil, DefaultOptions())

	if diag.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", diag.Duplicates)
	}
	if !slices.Equal(diag.DuplicateIDs, []string{"a"}) {
		t.Errorf("DuplicateIDs = %v, want [a]", diag.DuplicateIDs)
	}
	n, ok := g.Node("a")
	if !ok || n.Label != "second" {
		t.Errorf("node a = %+v, want label second", n)
	}
	want := []string{RootID, TopicID, "b", "a"}
	if got := g.NodeIDs(); !slices.Equal(got, want) {
		t.Errorf("NodeIDs() = %v, want %v", got, want)
	}
}

func TestBuild_InvalidAndReservedIDs(t *testing.T) {
	nodes := []NodeRecord{
		{ID: "", Depth: 1},
		{ID: "  ", Depth: 1},
		{ID: RootID, Depth: 1},
		{ID: "ok", Depth: 1},
	}

	g, diag := Build(nodes, nil, DefaultOptions())

	if diag.InvalidRecords != 3 {
		t.Errorf("InvalidRecords = %d, want 3", diag.InvalidRecords)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
}

func TestBuild_EdgeHygiene(t *testing.T) {
	nodes := []NodeRecord{{ID: "a", Depth: 1}, {ID: "b", Depth: 2}}
	edges := []EdgeRecord{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "b"},
		{Source: "a", Target: "ghost"},
		{Source: TopicID, Target: "b"},
	}

	g, diag := Build(nodes, edges, DefaultOptions())

	if diag.DuplicateEdges != 1 {
		t.Errorf("DuplicateEdges = %d, want 1", diag.DuplicateEdges)
	}
	if len(diag.DanglingEdges) != 2 {
		t.Errorf("DanglingEdges = %v, want 2 entries", diag.DanglingEdges)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
}

func TestBuild_OrphansDropped(t *testing.T) {
	nodes := []NodeRecord{
		{ID: "a", Depth: 1},
		{ID: "lost", Title: "Lost", Depth: 3},
	}

	g, diag := Build(nodes, nil, DefaultOptions())

	if _, ok := g.Node("lost"); ok {
		t.Error("orphan survived graph construction")
	}
	if len(diag.Orphans) != 1 || diag.Orphans[0].ID != "lost" {
		t.Errorf("Orphans = %v, want [lost]", diag.Orphans)
	}
	if diag.Orphans[0].Label != "Lost" {
		t.Errorf("orphan label = %q, want Lost", diag.Orphans[0].Label)
	}
}

func TestBuild_CyclesReported(t *testing.T) {
	nodes := []NodeRecord{{ID: "a", Depth: 1}, {ID: "b", Depth: 2}, {ID: "c", Depth: 3}}
	edges := []EdgeRecord{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "c", Target: "a"},
	}

	g, diag := Build(nodes, edges, DefaultOptions())

	if len(diag.Cycles) != 1 || diag.Cycles[0].From != "c" || diag.Cycles[0].To != "a" {
		t.Errorf("Cycles = %v, want [c→a]", diag.Cycles)
	}
	c, _ := g.Node("c")
	if c.Depth != 4 {
		t.Errorf("depth(c) = %d, want 4", c.Depth)
	}
	if !g.HasEdge("c", "a") {
		t.Error("cyclic edge removed from graph")
	}
}

func TestBuild_Empty(t *testing.T) {
	g, diag := Build(nil, nil, DefaultOptions())

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if !diag.Empty() {
		t.Errorf("diagnostics = %v, want none", diag.Warnings())
	}
	if got := g.VisitOrder(); !slices.Equal(got, []string{RootID, TopicID}) {
		t.Errorf("VisitOrder() = %v", got)
	}
}

func TestBuild_RecordFields(t *testing.T) {
	nodes := []NodeRecord{{
		ID:        "a",
		Title:     "  ",
		Depth:     1,
		Rationale: "because",
		Duration:  "2 weeks",
		Kind:      "skill",
	}}

	g, _ := Build(nodes, nil, DefaultOptions())

	n, _ := g.Node("a")
	if n.Label != "a" {
		t.Errorf("Label = %q, want id fallback", n.Label)
	}
	if n.Kind != dag.KindSkill {
		t.Errorf("Kind = %v, want skill", n.Kind)
	}
	if n.Rationale != "because" || n.Meta["duration"] != "2 weeks" {
		t.Errorf("node = %+v", n)
	}
}

func TestFromModules(t *testing.T) {
	modules := []normalize.Module{
		{ID: "m1", Title: "One", Items: []string{"x", "y"}},
		{ID: "m2", Title: "Two"},
	}

	tests := []struct {
		name      string
		opts      Options
		wantNodes int
		wantEdges []EdgeRecord
	}{
		{"plain", Options{}, 2, nil},
		{"sequential", Options{SequentialModules: true}, 2, []EdgeRecord{{"m1", "m2"}}},
		{"items", Options{ExpandItems: true}, 4, []EdgeRecord{{"m1", "m1/item-1"}, {"m1", "m1/item-2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, edges := FromModules(modules, tt.opts)
			if len(nodes) != tt.wantNodes {
				t.Errorf("got %d nodes, want %d", len(nodes), tt.wantNodes)
			}
			if !slices.Equal(edges, tt.wantEdges) {
				t.Errorf("edges = %v, want %v", edges, tt.wantEdges)
			}
		})
	}
}

func TestBuildFromModules_ItemsAreSkills(t *testing.T) {
	modules := []normalize.Module{{ID: "m1", Title: "One", Items: []string{"x"}}}

	g, diag := BuildFromModules(modules, Options{ExpandItems: true})

	if !diag.Empty() {
		t.Fatalf("diagnostics = %v", diag.Warnings())
	}
	n, ok := g.Node("m1/item-1")
	if !ok {
		t.Fatal("item node missing")
	}
	if n.Kind != dag.KindSkill || n.Depth != 3 {
		t.Errorf("item = %+v, want skill at depth 3", n)
	}
	if got := g.Prerequisites("m1/item-1"); !slices.Equal(got, []string{"m1"}) {
		t.Errorf("Prerequisites = %v, want [m1]", got)
	}
}

func TestDiagnostics_Warnings(t *testing.T) {
	d := Diagnostics{
		Duplicates:    1,
		DuplicateIDs:  []string{"a"},
		DanglingEdges: []dag.Edge{{From: "a", To: "x"}},
		Orphans:       []dag.Node{{ID: "o"}},
		Cycles:        []dag.Edge{{From: "c", To: "a"}},
	}
	if got := len(d.Warnings()); got != 4 {
		t.Errorf("Warnings() has %d lines, want 4", got)
	}
	if d.Empty() {
		t.Error("Empty() = true, want false")
	}
}
