package observability

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Stats counts pipeline and HTTP events in memory. It implements both
// [PipelineHooks] and [HTTPHooks] and is safe for concurrent use.
type Stats struct {
	runs      atomic.Int64
	failures  atomic.Int64
	nodes     atomic.Int64
	runNanos  atomic.Int64
	requests  atomic.Int64
	inflight  atomic.Int64
	started   time.Time
	mu        sync.Mutex
	probes    map[string]int64
	responses map[string]int64
}

// NewStats creates zeroed counters.
func NewStats() *Stats {
	return &Stats{
		started:   time.Now(),
		probes:    make(map[string]int64),
		responses: make(map[string]int64),
	}
}

// StatsSnapshot is a point-in-time copy of [Stats].
type StatsSnapshot struct {
	Uptime        string           `json:"uptime"`
	Runs          int64            `json:"runs"`
	Failures      int64            `json:"failures"`
	NodesBuilt    int64            `json:"nodes_built"`
	MeanRunMillis float64          `json:"mean_run_ms"`
	Probes        map[string]int64 `json:"probes"`
	Requests      int64            `json:"requests"`
	InFlight      int64            `json:"in_flight"`
	Responses     map[string]int64 `json:"responses"`
}

// Snapshot copies the current counters. Responses are keyed by status class
// ("2xx", "4xx", ...).
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Runs:       s.runs.Load(),
		Failures:   s.failures.Load(),
		NodesBuilt: s.nodes.Load(),
		Requests:   s.requests.Load(),
		InFlight:   s.inflight.Load(),
		Probes:     make(map[string]int64),
		Responses:  make(map[string]int64),
	}
	if snap.Runs > 0 {
		snap.MeanRunMillis = float64(s.runNanos.Load()) / float64(snap.Runs) / 1e6
	}
	s.mu.Lock()
	for k, v := range s.probes {
		snap.Probes[k] = v
	}
	for k, v := range s.responses {
		snap.Responses[k] = v
	}
	s.mu.Unlock()
	return snap
}

func (s *Stats) OnRunStart(context.Context, string) {}

func (s *Stats) OnRunComplete(_ context.Context, _ string, d time.Duration, err error) {
	s.runs.Add(1)
	s.runNanos.Add(int64(d))
	if err != nil {
		s.failures.Add(1)
	}
}

// OnNormalize counts matches per probe; an empty probe is counted as "none".
func (s *Stats) OnNormalize(_ context.Context, probe string, _ int, _ time.Duration) {
	if probe == "" {
		probe = "none"
	}
	s.mu.Lock()
	s.probes[probe]++
	s.mu.Unlock()
}

func (s *Stats) OnBuild(_ context.Context, nodes, _, _ int, _ time.Duration) {
	s.nodes.Add(int64(nodes))
}

func (s *Stats) OnLayout(context.Context, int, int, time.Duration)     {}
func (s *Stats) OnStatus(context.Context, int, int, time.Duration)     {}
func (s *Stats) OnVisibility(context.Context, int, int, time.Duration) {}

func (s *Stats) OnRequest(context.Context, string, string) {
	s.requests.Add(1)
	s.inflight.Add(1)
}

func (s *Stats) OnResponse(_ context.Context, _, _ string, code int, _ time.Duration) {
	s.inflight.Add(-1)
	class := strconv.Itoa(code/100) + "xx"
	s.mu.Lock()
	s.responses[class]++
	s.mu.Unlock()
}

var (
	_ PipelineHooks = (*Stats)(nil)
	_ HTTPHooks     = (*Stats)(nil)
)
