package roadmap

import (
	"errors"
	"strings"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/dag/transform"
	rerrors "github.com/cariskill/roadmap/pkg/errors"
	"github.com/cariskill/roadmap/pkg/normalize"
)

// Reserved ids of the two synthetic nodes.
const (
	RootID  = "__learner__"
	TopicID = "__topic__"
)

// Default labels of the synthetic nodes.
const (
	DefaultLearnerLabel = "You"
	DefaultSubjectLabel = "Roadmap"
)

// Options configures graph construction.
type Options struct {
	// LearnerLabel labels the absolute root.
	LearnerLabel string
	// SubjectLabel labels the topic root, usually the roadmap subject.
	SubjectLabel string
	// SequentialModules chains normalized modules as prerequisites of
	// each other (FromModules only).
	SequentialModules bool
	// ExpandItems turns module items into skill children (FromModules only).
	ExpandItems bool
}

// DefaultOptions returns the default builder options.
func DefaultOptions() Options {
	return Options{
		LearnerLabel: DefaultLearnerLabel,
		SubjectLabel: DefaultSubjectLabel,
	}
}

// Build turns node and edge records into a rooted roadmap graph.
//
// The result contains two synthetic nodes: the learner root (depth 0) and
// the topic root, wired root→topic and topic→every record at depth 1 (a
// missing depth counts as 1). Deeper structure comes only from the supplied
// edges; nothing else is inferred. Supplied edges also populate the
// prerequisite map, synthetic ones do not.
//
// After wiring, depths are resolved breadth-first from the root, unreachable
// records are removed, and cyclic edges are reported. Build never fails:
// every input problem is reported in the returned Diagnostics.
func Build(nodes []NodeRecord, edges []EdgeRecord, opts Options) (*dag.DAG, Diagnostics) {
	opts = withDefaults(opts)
	var diag Diagnostics

	records := dedupe(nodes, &diag)

	g := dag.New()
	_ = g.AddNode(dag.Node{ID: RootID, Label: opts.LearnerLabel, Kind: dag.KindRoot})
	_ = g.AddNode(dag.Node{ID: TopicID, Label: opts.SubjectLabel, Kind: dag.KindCategory})
	_ = g.AddEdge(dag.Edge{From: RootID, To: TopicID, Synthetic: true})
	g.SetRoot(RootID)

	for _, r := range records {
		n := dag.Node{
			ID:          r.ID,
			Label:       strings.TrimSpace(r.Title),
			Kind:        r.kind(),
			Depth:       r.Depth,
			Description: r.Description,
			Rationale:   r.Rationale,
		}
		if n.Label == "" {
			n.Label = r.ID
		}
		if r.Duration != "" {
			n.Meta = dag.Metadata{"duration": r.Duration}
		}
		_ = g.AddNode(n)
		if r.Depth <= 1 {
			_ = g.AddEdge(dag.Edge{From: TopicID, To: r.ID, Synthetic: true})
		}
	}

	for _, e := range edges {
		edge := dag.Edge{From: e.Source, To: e.Target}
		if isReserved(e.Source) || isReserved(e.Target) {
			diag.DanglingEdges = append(diag.DanglingEdges, edge)
			continue
		}
		switch err := g.AddEdge(edge); {
		case err == nil:
		case errors.Is(err, dag.ErrDuplicateEdge):
			diag.DuplicateEdges++
		default:
			diag.DanglingEdges = append(diag.DanglingEdges, edge)
		}
	}

	diag.Cycles = transform.FindCycles(g)
	res := transform.ResolveDepth(g)
	diag.Orphans = transform.PruneUnreachable(g, res.Unreachable)

	return g, diag
}

// BuildFromModules builds a graph from normalizer output.
func BuildFromModules(modules []normalize.Module, opts Options) (*dag.DAG, Diagnostics) {
	nodes, edges := FromModules(modules, opts)
	return Build(nodes, edges, opts)
}

// dedupe drops invalid records and resolves duplicate ids last-write-wins:
// the surviving record takes the position of its last occurrence.
func dedupe(nodes []NodeRecord, diag *Diagnostics) []NodeRecord {
	last := make(map[string]int, len(nodes))
	for i, r := range nodes {
		if rerrors.ValidateNodeID(r.ID) != nil || isReserved(r.ID) {
			continue
		}
		if _, seen := last[r.ID]; seen {
			diag.Duplicates++
			diag.DuplicateIDs = append(diag.DuplicateIDs, r.ID)
		}
		last[r.ID] = i
	}

	out := make([]NodeRecord, 0, len(last))
	for i, r := range nodes {
		if rerrors.ValidateNodeID(r.ID) != nil || isReserved(r.ID) {
			diag.InvalidRecords++
			continue
		}
		if last[r.ID] == i {
			out = append(out, r)
		}
	}
	return out
}

func isReserved(id string) bool { return id == RootID || id == TopicID }

func withDefaults(opts Options) Options {
	if opts.LearnerLabel == "" {
		opts.LearnerLabel = DefaultLearnerLabel
	}
	if opts.SubjectLabel == "" {
		opts.SubjectLabel = DefaultSubjectLabel
	}
	return opts
}
