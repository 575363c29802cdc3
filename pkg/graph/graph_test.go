package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/layout"
	"github.com/cariskill/roadmap/pkg/normalize"
	"github.com/cariskill/roadmap/pkg/roadmap"
)

func sample() *dag.DAG {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "r", Kind: dag.KindRoot})
	_ = g.AddNode(dag.Node{ID: "a", Label: "A", Kind: dag.KindTopic, Depth: 1, Meta: dag.Metadata{"duration": "1w"}})
	_ = g.AddNode(dag.Node{ID: "b", Kind: dag.KindSkill, Depth: 2, Status: dag.StatusLocked})
	_ = g.AddEdge(dag.Edge{From: "r", To: "a", Synthetic: true})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	g.SetRoot("r")
	return g
}

func TestFromDAG(t *testing.T) {
	gr := FromDAG(sample())

	if gr.Root != "r" {
		t.Errorf("Root = %q, want r", gr.Root)
	}
	ids := make([]string, len(gr.Nodes))
	for i, n := range gr.Nodes {
		ids[i] = n.ID
		if !n.Visible {
			t.Errorf("node %s not visible", n.ID)
		}
	}
	if !slices.Equal(ids, []string{"r", "a", "b"}) {
		t.Errorf("node order = %v, want insertion order", ids)
	}
	if len(gr.Edges) != 2 || !gr.Edges[0].Synthetic || gr.Edges[1].Synthetic {
		t.Errorf("Edges = %v", gr.Edges)
	}
	if gr.Nodes[1].Meta["duration"] != "1w" {
		t.Errorf("meta not carried: %v", gr.Nodes[1].Meta)
	}
}

func TestRoundTrip(t *testing.T) {
	orig := sample()

	g, err := ToDAG(FromDAG(orig))
	if err != nil {
		t.Fatalf("ToDAG: %v", err)
	}

	if g.Root() != "r" || g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("round trip lost structure: root=%q nodes=%d edges=%d", g.Root(), g.NodeCount(), g.EdgeCount())
	}
	if got := g.Prerequisites("a"); len(got) != 0 {
		t.Errorf("synthetic edge became a prerequisite: %v", got)
	}
	b, _ := g.Node("b")
	if b.Status != dag.StatusLocked || b.Kind != dag.KindSkill {
		t.Errorf("b = %+v", b)
	}
}

func TestToDAG_Errors(t *testing.T) {
	tests := []struct {
		name string
		gr   Graph
	}{
		{"duplicate node", Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}}},
		{"unknown edge target", Graph{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "a", To: "x"}}}},
		{"empty id", Graph{Nodes: []Node{{ID: ""}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToDAG(tt.gr); err == nil {
				t.Error("ToDAG() succeeded, want error")
			}
		})
	}
}

func TestSnapshotJSON(t *testing.T) {
	s := &Snapshot{
		RunID:      "run-1",
		Graph:      FromDAG(sample()),
		Bounds:     layout.Bounds{MinX: -1, MinY: -2, MaxX: 3, MaxY: 4},
		VisitOrder: []string{"r", "a", "b"},
		Source:     &Source{Probe: normalize.ProbeRootArray, Modules: 1},
	}
	s.Nodes[2].Visible = false

	data, err := MarshalSnapshot(s)
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}
	for _, want := range []string{`"kind": "topic"`, `"status": "locked"`, `"run_id": "run-1"`, `"probe": "root-array"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %s", want)
		}
	}

	got, err := ReadSnapshot(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if got.RunID != "run-1" || got.Bounds != s.Bounds || len(got.Nodes) != 3 {
		t.Errorf("decoded snapshot = %+v", got)
	}
	if got.Nodes[2].Status != dag.StatusLocked {
		t.Errorf("status = %v, want locked", got.Nodes[2].Status)
	}
	if n := len(got.VisibleNodes()); n != 2 {
		t.Errorf("VisibleNodes() = %d, want 2", n)
	}
}

func TestSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	s := &Snapshot{Graph: FromDAG(sample())}

	if err := WriteSnapshotFile(s, path); err != nil {
		t.Fatalf("WriteSnapshotFile: %v", err)
	}
	got, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("ReadSnapshotFile: %v", err)
	}
	if len(got.Edges) != 2 {
		t.Errorf("got %d edges, want 2", len(got.Edges))
	}

	if _, err := ReadSnapshotFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadSnapshotFile(missing) succeeded")
	}
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSnapshotFile(path); err == nil {
		t.Error("ReadSnapshotFile(truncated) succeeded")
	}
}

func TestDiagnosticsFrom(t *testing.T) {
	if DiagnosticsFrom(roadmap.Diagnostics{}) != nil {
		t.Error("DiagnosticsFrom(empty) should be nil")
	}

	d := DiagnosticsFrom(roadmap.Diagnostics{
		Orphans: []dag.Node{{ID: "lost"}},
		Cycles:  []dag.Edge{{From: "c", To: "a"}},
	})

	if !slices.Equal(d.Orphans, []string{"lost"}) {
		t.Errorf("Orphans = %v", d.Orphans)
	}
	if len(d.Cycles) != 1 || d.Cycles[0].From != "c" {
		t.Errorf("Cycles = %v", d.Cycles)
	}
	if len(d.Warnings) != 2 {
		t.Errorf("Warnings = %v", d.Warnings)
	}
}
