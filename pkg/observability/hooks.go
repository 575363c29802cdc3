// Package observability carries engine events to metrics and tracing
// backends without the engine importing any of them.
//
// The pipeline runner reports each stage through [Pipeline] and the HTTP
// server reports each request through [HTTP]. Both default to no-ops;
// processes install their own implementation once at startup:
//
//	stats := observability.NewStats()
//	observability.SetPipelineHooks(stats)
//	observability.SetHTTPHooks(stats)
//
// [Stats] is the built-in implementation: in-memory counters served by
// `roadmap serve` at /statsz.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the roadmap pipeline.
type PipelineHooks interface {
	OnRunStart(ctx context.Context, runID string)
	OnRunComplete(ctx context.Context, runID string, duration time.Duration, err error)

	// OnNormalize reports which probe matched and how many modules it produced.
	OnNormalize(ctx context.Context, probe string, modules int, duration time.Duration)

	// OnBuild reports the built graph size and the number of diagnostics.
	OnBuild(ctx context.Context, nodes, edges, warnings int, duration time.Duration)

	OnLayout(ctx context.Context, nodes, crossings int, duration time.Duration)
	OnStatus(ctx context.Context, completed, locked int, duration time.Duration)
	OnVisibility(ctx context.Context, visible, hidden int, duration time.Duration)
}

// HTTPHooks receives one OnRequest and one OnResponse per served request.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks ignores every event. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnRunComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnNormalize(context.Context, string, int, time.Duration)     {}
func (NoopPipelineHooks) OnBuild(context.Context, int, int, int, time.Duration)       {}
func (NoopPipelineHooks) OnLayout(context.Context, int, int, time.Duration)           {}
func (NoopPipelineHooks) OnStatus(context.Context, int, int, time.Duration)           {}
func (NoopPipelineHooks) OnVisibility(context.Context, int, int, time.Duration)       {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var registry = struct {
	sync.RWMutex
	pipeline PipelineHooks
	http     HTTPHooks
}{pipeline: NoopPipelineHooks{}, http: NoopHTTPHooks{}}

// SetPipelineHooks installs h for all later pipeline runs. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.pipeline = h
	registry.Unlock()
}

// SetHTTPHooks installs h for all later requests. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.http = h
	registry.Unlock()
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.pipeline
}

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.http
}

// Reset reinstalls the no-op hooks.
func Reset() {
	registry.Lock()
	registry.pipeline = NoopPipelineHooks{}
	registry.http = NoopHTTPHooks{}
	registry.Unlock()
}
