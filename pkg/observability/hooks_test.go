package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooks(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnRunStart(ctx, "run")
	p.OnNormalize(ctx, "phases", 3, time.Millisecond)
	p.OnBuild(ctx, 5, 4, 0, time.Millisecond)
	p.OnLayout(ctx, 5, 0, time.Millisecond)
	p.OnStatus(ctx, 1, 2, time.Millisecond)
	p.OnVisibility(ctx, 5, 0, time.Millisecond)
	p.OnRunComplete(ctx, "run", time.Second, nil)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/graph")
	h.OnResponse(ctx, "POST", "/v1/graph", 200, time.Second)
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	stats := NewStats()
	SetPipelineHooks(stats)
	SetHTTPHooks(stats)
	if Pipeline() != PipelineHooks(stats) || HTTP() != HTTPHooks(stats) {
		t.Error("installed hooks not returned")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooks(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	SetPipelineHooks(nil)
	SetHTTPHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("SetHTTPHooks(nil) should be ignored")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
