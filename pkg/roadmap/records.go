package roadmap

import (
	"fmt"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/normalize"
)

// NodeRecord is one persisted roadmap node row.
type NodeRecord struct {
	ID          string `json:"node_id" yaml:"node_id"`
	Title       string `json:"title" yaml:"title"`
	Depth       int    `json:"depth_level" yaml:"depth_level"`
	Rationale   string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"`
	// Kind is "topic" (default) or "skill".
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// EdgeRecord is one persisted prerequisite row: Target depends on Source.
type EdgeRecord struct {
	Source string `json:"source_node_id" yaml:"source_node_id"`
	Target string `json:"target_node_id" yaml:"target_node_id"`
}

func (r NodeRecord) kind() dag.Kind {
	if k, ok := dag.ParseKind(r.Kind); ok && !k.IsSynthetic() {
		return k
	}
	return dag.KindTopic
}

// FromModules converts normalized modules into node and edge records.
//
// Every module becomes a depth-1 topic. With opts.SequentialModules each
// module is a prerequisite of the next one. With opts.ExpandItems each item
// becomes a depth-2 skill child "<module-id>/item-<n>". All relationships
// are emitted as explicit edge records.
func FromModules(modules []normalize.Module, opts Options) ([]NodeRecord, []EdgeRecord) {
	var (
		nodes []NodeRecord
		edges []EdgeRecord
	)
	for i, m := range modules {
		nodes = append(nodes, NodeRecord{
			ID:          m.ID,
			Title:       m.Title,
			Depth:       1,
			Description: m.Description,
			Duration:    m.Duration,
			Kind:        dag.KindTopic.String(),
		})
		if opts.SequentialModules && i > 0 {
			edges = append(edges, EdgeRecord{Source: modules[i-1].ID, Target: m.ID})
		}
		if !opts.ExpandItems {
			continue
		}
		for j, item := range m.Items {
			id := fmt.Sprintf("%s/item-%d", m.ID, j+1)
			nodes = append(nodes, NodeRecord{
				ID:    id,
				Title: item,
				Depth: 2,
				Kind:  dag.KindSkill.String(),
			})
			edges = append(edges, EdgeRecord{Source: m.ID, Target: id})
		}
	}
	return nodes, edges
}
