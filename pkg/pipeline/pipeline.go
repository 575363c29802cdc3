// Package pipeline runs the roadmap engine end to end.
//
// A run takes either a raw roadmap payload or persisted node and edge rows
// and produces a [Result]: the built graph, its layout, per-node status, the
// visible subset under the current collapse state and a serializable
// snapshot of all of it.
//
// # Architecture
//
// The stages are the engine packages, composed in order:
//
//  1. Normalize: raw payload → modules (skipped for persisted rows)
//  2. Build: records → rooted graph plus diagnostics
//  3. Layout: ranks, ordering, jitter, bounds
//  4. Status: completion set → locked / in-progress / completed
//  5. Visibility: collapse state → visible nodes and edges
//
// Layout and status only read the built graph; the annotated copy returned
// in [Result.View] is a clone, so the built graph stays untouched.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Payload:   raw,
//	    Subject:   "Go",
//	    Completed: []string{"module-1"},
//	})
//	if err != nil {
//	    return err
//	}
//	snap := result.Snapshot
//
// Every run gets a fresh [Result.RunID]. A caller that starts a new run
// before an older one returns can use it to discard the stale result.
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/errors"
	"github.com/cariskill/roadmap/pkg/graph"
	"github.com/cariskill/roadmap/pkg/layout"
	"github.com/cariskill/roadmap/pkg/normalize"
	"github.com/cariskill/roadmap/pkg/roadmap"
	"github.com/cariskill/roadmap/pkg/status"
	"github.com/cariskill/roadmap/pkg/visibility"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all inputs of a pipeline run.
// This struct supports JSON serialization for HTTP requests.
type Options struct {
	// Payload is a raw roadmap document routed through the normalizer.
	// Mutually exclusive with Nodes.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Nodes and Edges are persisted rows used as-is.
	Nodes []roadmap.NodeRecord `json:"nodes,omitempty"`
	Edges []roadmap.EdgeRecord `json:"edges,omitempty"`

	// Completed lists node IDs the learner has finished.
	Completed []string `json:"completed,omitempty"`
	// Collapsed lists node IDs whose subtree is folded.
	Collapsed []string `json:"collapsed,omitempty"`

	// Builder options
	Subject           string `json:"subject,omitempty"`
	Learner           string `json:"learner,omitempty"`
	SequentialModules bool   `json:"sequential_modules,omitempty"`
	ExpandItems       bool   `json:"expand_items,omitempty"`

	// Runtime options (not serialized)
	Layout        layout.Config `json:"-"`
	ExcerptLength int           `json:"-"`
	Logger        *log.Logger   `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	RunID string

	// Normalized is the normalizer outcome, nil when rows were supplied.
	Normalized *normalize.Result

	// Graph is the built graph. View is an annotated clone of it carrying
	// status, progress, colors, collapse flags and positions.
	Graph       *dag.DAG
	View        *dag.DAG
	Diagnostics roadmap.Diagnostics

	Layout   layout.Layout
	Statuses map[string]dag.Status
	Visible  visibility.Result

	Snapshot *graph.Snapshot
	Stats    Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	VisibleCount   int
	Counts         status.Counts
	NormalizeTime  time.Duration
	BuildTime      time.Duration
	LayoutTime     time.Duration
	DecorateTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the inputs and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Payload) > 0 && len(o.Nodes) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "payload and nodes are mutually exclusive")
	}
	if len(o.Payload) > 0 {
		if err := errors.ValidatePayloadSize(o.Payload); err != nil {
			return err
		}
	}
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if o.ExcerptLength == 0 {
		o.ExcerptLength = normalize.DefaultExcerptLength
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// BuilderOptions returns the graph builder options.
func (o *Options) BuilderOptions() roadmap.Options {
	return roadmap.Options{
		LearnerLabel:      o.Learner,
		SubjectLabel:      o.Subject,
		SequentialModules: o.SequentialModules,
		ExpandItems:       o.ExpandItems,
	}
}

// CompletionSet returns Completed as a status set.
func (o *Options) CompletionSet() status.Set { return status.NewSet(o.Completed...) }

// CollapseState returns Collapsed as a collapse state.
func (o *Options) CollapseState() visibility.CollapseState {
	state := make(visibility.CollapseState, len(o.Collapsed))
	for _, id := range o.Collapsed {
		state[id] = true
	}
	return state
}
