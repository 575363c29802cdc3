package status

import (
	"testing"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/roadmap"
)

func chain(t *testing.T) *dag.DAG {
	t.Helper()
	g, _ := roadmap.Build(
		[]roadmap.NodeRecord{{ID: "A", Depth: 1}, {ID: "B", Depth: 2}},
		[]roadmap.EdgeRecord{{Source: "A", Target: "B"}},
		roadmap.DefaultOptions(),
	)
	return g
}

func TestCompute_Chain(t *testing.T) {
	g := chain(t)

	got := Compute(g, NewSet())
	if got["A"] != dag.StatusInProgress {
		t.Errorf("status(A) = %v, want in-progress", got["A"])
	}
	if got["B"] != dag.StatusLocked {
		t.Errorf("status(B) = %v, want locked", got["B"])
	}

	got = Compute(g, NewSet("A"))
	if got["A"] != dag.StatusCompleted {
		t.Errorf("status(A) = %v, want completed", got["A"])
	}
	if got["B"] != dag.StatusInProgress {
		t.Errorf("status(B) = %v, want in-progress", got["B"])
	}
}

func TestCompute_Conjunctive(t *testing.T) {
	g, _ := roadmap.Build(
		[]roadmap.NodeRecord{{ID: "A", Depth: 1}, {ID: "B", Depth: 1}, {ID: "C", Depth: 2}},
		[]roadmap.EdgeRecord{{Source: "A", Target: "C"}, {Source: "B", Target: "C"}},
		roadmap.DefaultOptions(),
	)

	tests := []struct {
		name      string
		completed Set
		want      dag.Status
	}{
		{"none", NewSet(), dag.StatusLocked},
		{"one of two", NewSet("A"), dag.StatusLocked},
		{"both", NewSet("A", "B"), dag.StatusInProgress},
		{"itself", NewSet("C"), dag.StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(g, "C", tt.completed); got != tt.want {
				t.Errorf("Of(C) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompute_Properties(t *testing.T) {
	g, _ := roadmap.Build(
		[]roadmap.NodeRecord{
			{ID: "a", Depth: 1}, {ID: "b", Depth: 1},
			{ID: "c", Depth: 2}, {ID: "d", Depth: 3},
		},
		[]roadmap.EdgeRecord{
			{Source: "a", Target: "c"}, {Source: "b", Target: "c"}, {Source: "c", Target: "d"},
		},
		roadmap.DefaultOptions(),
	)
	completed := NewSet("b", "d", "ghost")

	got := Compute(g, completed)

	if len(got) != g.NodeCount() {
		t.Errorf("got %d statuses, want %d", len(got), g.NodeCount())
	}
	for id, s := range got {
		if (s == dag.StatusCompleted) != completed.Has(id) {
			t.Errorf("%s: status %v disagrees with completion set", id, s)
		}
		if s != dag.StatusLocked {
			continue
		}
		prereqs := g.Prerequisites(id)
		if len(prereqs) == 0 {
			t.Errorf("%s is locked without prerequisites", id)
		}
		missing := false
		for _, p := range prereqs {
			if !completed.Has(p) {
				missing = true
			}
		}
		if !missing {
			t.Errorf("%s is locked but every prerequisite is completed", id)
		}
	}
}

func TestProgress(t *testing.T) {
	g, _ := roadmap.Build(
		[]roadmap.NodeRecord{{ID: "m", Depth: 1}, {ID: "x", Depth: 2}, {ID: "y", Depth: 2}, {ID: "z", Depth: 2}},
		[]roadmap.EdgeRecord{{Source: "m", Target: "x"}, {Source: "m", Target: "y"}, {Source: "m", Target: "z"}},
		roadmap.DefaultOptions(),
	)

	got := Progress(g, NewSet("x"))

	if got["m"] != "33%" {
		t.Errorf("Progress(m) = %q, want 33%%", got["m"])
	}
	if _, ok := got["x"]; ok {
		t.Error("leaf node has a percentage")
	}
	if got[roadmap.TopicID] != "0%" {
		t.Errorf("Progress(topic) = %q, want 0%%", got[roadmap.TopicID])
	}
}

func TestActionable(t *testing.T) {
	tests := []struct {
		kind   dag.Kind
		status dag.Status
		want   bool
	}{
		{dag.KindTopic, dag.StatusInProgress, true},
		{dag.KindSkill, dag.StatusCompleted, true},
		{dag.KindTopic, dag.StatusLocked, false},
		{dag.KindRoot, dag.StatusInProgress, false},
		{dag.KindCategory, dag.StatusCompleted, false},
	}
	for _, tt := range tests {
		n := &dag.Node{ID: "n", Kind: tt.kind}
		if got := Actionable(n, tt.status); got != tt.want {
			t.Errorf("Actionable(%v, %v) = %v, want %v", tt.kind, tt.status, got, tt.want)
		}
	}
}

func TestApplyAndTally(t *testing.T) {
	g := chain(t)

	statuses := Apply(g, NewSet())

	b, _ := g.Node("B")
	if b.Status != dag.StatusLocked {
		t.Errorf("B.Status = %v, want locked", b.Status)
	}
	a, _ := g.Node("A")
	if a.Percentage != "0%" {
		t.Errorf("A.Percentage = %q, want 0%%", a.Percentage)
	}
	c := Tally(g, statuses)
	if c != (Counts{InProgress: 1, Locked: 1}) {
		t.Errorf("Tally() = %+v", c)
	}
	if c.Total() != 2 {
		t.Errorf("Total() = %d, want 2", c.Total())
	}
}
