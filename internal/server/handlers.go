package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cariskill/roadmap/pkg/cache"
	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/errors"
	"github.com/cariskill/roadmap/pkg/graph"
	"github.com/cariskill/roadmap/pkg/status"
	"github.com/cariskill/roadmap/pkg/visibility"
)

// StatusRequest asks for the statuses of a serialized graph.
type StatusRequest struct {
	Graph     graph.Graph `json:"graph"`
	Completed []string    `json:"completed"`
}

// StatusResponse maps every node to its status and progress.
type StatusResponse struct {
	Statuses map[string]dag.Status `json:"statuses"`
	Progress map[string]string     `json:"progress,omitempty"`
	Counts   status.Counts         `json:"counts"`
}

// VisibilityRequest asks which nodes of a serialized graph remain visible.
type VisibilityRequest struct {
	Graph     graph.Graph `json:"graph"`
	Collapsed []string    `json:"collapsed"`
}

// VisibilityResponse lists the visible nodes and edges in graph order.
type VisibilityResponse struct {
	Visible []string     `json:"visible"`
	Hidden  []string     `json:"hidden"`
	Edges   []graph.Edge `json:"edges"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "stats are not exposed"))
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// handleNormalize takes the raw roadmap document as the request body.
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := s.cfg.PipelineOptions()
	opts.Payload = body

	ctx := r.Context()
	key := cache.Key("normalize", cache.Hash(body), opts.ExcerptLength)
	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		w.Header().Set(cacheHeader, "hit")
		writeRaw(w, http.StatusOK, data)
		return
	}

	data, err := json.Marshal(s.runner.Normalize(opts))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode modules"))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.Server.Cache.TTL); err != nil {
		s.logger.Warn("Cache write failed", "error", err)
	}
	w.Header().Set(cacheHeader, "miss")
	writeRaw(w, http.StatusOK, data)
}

// handleGraph runs the full pipeline. Fields missing from the request keep
// their configured values.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts := s.cfg.PipelineOptions()
	if !decodeRequest(w, r, &opts) {
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Snapshot)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	g, ok := rebuild(w, req.Graph)
	if !ok {
		return
	}
	completed := status.NewSet(req.Completed...)
	statuses := status.Compute(g, completed)
	writeJSON(w, http.StatusOK, StatusResponse{
		Statuses: statuses,
		Progress: status.Progress(g, completed),
		Counts:   status.Tally(g, statuses),
	})
}

func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	var req VisibilityRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	g, ok := rebuild(w, req.Graph)
	if !ok {
		return
	}
	state := make(visibility.CollapseState, len(req.Collapsed))
	for _, id := range req.Collapsed {
		state[id] = true
	}
	vis := visibility.Compute(g, state)

	resp := VisibilityResponse{
		Visible: make([]string, 0, len(vis.Nodes)),
		Hidden:  []string{},
		Edges:   make([]graph.Edge, 0, len(vis.Edges)),
	}
	for _, id := range g.NodeIDs() {
		if vis.Hidden[id] {
			resp.Hidden = append(resp.Hidden, id)
		} else {
			resp.Visible = append(resp.Visible, id)
		}
	}
	for _, e := range vis.Edges {
		resp.Edges = append(resp.Edges, graph.Edge{From: e.From, To: e.To, Synthetic: e.Synthetic})
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeRequest decodes the body into req. On failure it writes the error
// response and reports false.
func decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return false
	}
	if err := json.Unmarshal(body, req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return false
	}
	return true
}

func rebuild(w http.ResponseWriter, gr graph.Graph) (*dag.DAG, bool) {
	g, err := graph.ToDAG(gr)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid graph"))
		return nil, false
	}
	return g, true
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, errors.MaxPayloadBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if err := errors.ValidatePayloadSize(body); err != nil {
		return nil, err
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, code int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, code.HTTPStatus(), errorBody{Code: code, Message: errors.UserMessage(err)})
}
