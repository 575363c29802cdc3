package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/graph"
	"github.com/cariskill/roadmap/pkg/layout"
	"github.com/cariskill/roadmap/pkg/normalize"
	"github.com/cariskill/roadmap/pkg/observability"
	"github.com/cariskill/roadmap/pkg/roadmap"
	"github.com/cariskill/roadmap/pkg/status"
	"github.com/cariskill/roadmap/pkg/visibility"
)

// Runner executes pipeline runs.
//
// The Runner holds no run state - it doesn't store results. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs normalize → build → layout → decorate (status and visibility).
//
// The engine stages never fail; errors only come from invalid options or a
// cancelled context. Cancellation is checked between stages.
func (r *Runner) Execute(ctx context.Context, opts Options) (res *Result, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{RunID: uuid.NewString()}
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, result.RunID)
	runStart := time.Now()
	defer func() {
		hooks.OnRunComplete(ctx, result.RunID, time.Since(runStart), err)
	}()

	// Stage 1: Normalize (payload input only)
	nodes, edges := opts.Nodes, opts.Edges
	if len(opts.Payload) > 0 {
		start := time.Now()
		nr := r.Normalize(opts)
		result.Normalized = &nr
		result.Stats.NormalizeTime = time.Since(start)
		hooks.OnNormalize(ctx, nr.Probe, len(nr.Modules), result.Stats.NormalizeTime)

		nodes, edges = roadmap.FromModules(nr.Modules, opts.BuilderOptions())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Build
	start := time.Now()
	g, diag := roadmap.Build(nodes, edges, opts.BuilderOptions())
	result.Graph, result.Diagnostics = g, diag
	result.Stats.BuildTime = time.Since(start)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	warnings := diag.Warnings()
	hooks.OnBuild(ctx, g.NodeCount(), g.EdgeCount(), len(warnings), result.Stats.BuildTime)

	logger.Debug("built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.BuildTime)
	for _, w := range warnings {
		logger.Warn(w)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Layout
	start = time.Now()
	result.Layout = layout.Compute(g, opts.Layout)
	result.Stats.LayoutTime = time.Since(start)
	hooks.OnLayout(ctx, len(result.Layout.Positions), result.Layout.Crossings, result.Stats.LayoutTime)

	logger.Debug("computed layout",
		"ranks", len(result.Layout.Ranks),
		"crossings", result.Layout.Crossings,
		"duration", result.Stats.LayoutTime)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Status and visibility on an annotated clone
	start = time.Now()
	collapsed := opts.CollapseState()
	view, statuses, vis := Decorate(g, result.Layout, opts.CompletionSet(), collapsed)
	result.View, result.Statuses, result.Visible = view, statuses, vis
	result.Stats.Counts = status.Tally(view, statuses)
	result.Stats.VisibleCount = len(vis.Nodes)
	result.Stats.DecorateTime = time.Since(start)
	hooks.OnStatus(ctx, result.Stats.Counts.Completed, result.Stats.Counts.Locked, result.Stats.DecorateTime)
	hooks.OnVisibility(ctx, len(vis.Nodes), len(vis.Hidden), result.Stats.DecorateTime)

	logger.Debug("resolved status",
		"completed", result.Stats.Counts.Completed,
		"in_progress", result.Stats.Counts.InProgress,
		"locked", result.Stats.Counts.Locked,
		"visible", len(vis.Nodes))

	result.Snapshot = r.snapshot(result, opts)
	return result, nil
}

// Normalize runs the normalizer over opts.Payload and logs how it matched.
func (r *Runner) Normalize(opts Options) normalize.Result {
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	excerpt := opts.ExcerptLength
	if excerpt == 0 {
		excerpt = normalize.DefaultExcerptLength
	}

	nr := normalize.Normalize(opts.Payload, normalize.Options{ExcerptLength: excerpt})
	logger.Debug("normalized payload",
		"probe", nr.Probe,
		"path", nr.Path,
		"modules", len(nr.Modules))
	switch {
	case nr.Probe == "":
		logger.Warn("payload has no recognizable module list")
	case nr.Ambiguous:
		logger.Warn("deep search picked one of several candidate arrays",
			"path", nr.Path,
			"alternatives", nr.Alternatives)
	}
	return nr
}

// Redecorate recomputes status and visibility for an existing result after
// the completion set or collapse state changed. Layout is reused.
func (r *Runner) Redecorate(res *Result, completed status.Set, collapsed visibility.CollapseState) *Result {
	next := *res
	next.View, next.Statuses, next.Visible = Decorate(res.Graph, res.Layout, completed, collapsed)
	next.Stats.Counts = status.Tally(next.View, next.Statuses)
	next.Stats.VisibleCount = len(next.Visible.Nodes)

	snap := Snapshot(next.View, next.Layout, next.Visible)
	if res.Snapshot != nil {
		snap.RunID, snap.Subject = res.Snapshot.RunID, res.Snapshot.Subject
		snap.Source, snap.Diagnostics = res.Snapshot.Source, res.Snapshot.Diagnostics
	}
	next.Snapshot = snap
	return &next
}

func (r *Runner) snapshot(res *Result, opts Options) *graph.Snapshot {
	snap := Snapshot(res.View, res.Layout, res.Visible)
	snap.RunID = res.RunID
	snap.Subject = subjectLabel(res.View, opts)
	snap.Diagnostics = graph.DiagnosticsFrom(res.Diagnostics)
	if res.Normalized != nil {
		snap.Source = graph.SourceFrom(*res.Normalized)
	}
	return snap
}

func subjectLabel(g *dag.DAG, opts Options) string {
	if opts.Subject != "" {
		return opts.Subject
	}
	if n, ok := g.Node(roadmap.TopicID); ok {
		return n.Label
	}
	return ""
}
