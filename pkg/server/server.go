// Package server exposes the distance engine over HTTP.
//
// The API is JSON in, JSON out:
//
//	GET  /healthz           liveness probe
//	GET  /version           build information
//	POST /v1/distance       compute a distance between two graphs
//	POST /v1/render         render a comparison diagram (SVG)
//	GET  /v1/runs           list persisted runs (when a store is configured)
//	GET  /v1/runs/{id}      fetch one run
//	DELETE /v1/runs/{id}    delete one run
//
// Graphs are posted as edge lists over a shared node count, which keeps the
// payload format-independent: whatever loader produced the edges, equal
// graphs are equal payloads.
package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/causalbench/adjid/pkg/buildinfo"
	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
	"github.com/causalbench/adjid/pkg/observability"
	"github.com/causalbench/adjid/pkg/pipeline"
	"github.com/causalbench/adjid/pkg/render"
	"github.com/causalbench/adjid/pkg/results"
)

// Server wires the pipeline runner into an HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  results.Store // optional
	logger *log.Logger
}

// New creates a server. store may be nil, which disables the runs routes.
func New(runner *pipeline.Runner, store results.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: store, logger: logger}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
			"built":   buildinfo.Date,
		})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/distance", s.handleDistance)
		r.Post("/render", s.handleRender)
		if s.store != nil {
			r.Get("/runs", s.handleListRuns)
			r.Get("/runs/{id}", s.handleGetRun)
			r.Delete("/runs/{id}", s.handleDeleteRun)
		}
	})

	return r
}

// observe emits HTTP hook events around every request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// edgePair is a [from, to] tuple in JSON.
type edgePair [2]int

// distanceRequest is the payload for /v1/distance and /v1/render.
type distanceRequest struct {
	Nodes      int        `json:"nodes"`
	TruthEdges []edgePair `json:"truth_edges"`
	GuessEdges []edgePair `json:"guess_edges"`
	Metric     string     `json:"metric"`
	Treatments []int      `json:"treatments,omitempty"`
	Effects    []int      `json:"effects,omitempty"`
}

func (req *distanceRequest) graphs() (truth, guess *graph.Graph, err error) {
	truth, err = graph.FromEdges(req.Nodes, toEdges(req.TruthEdges))
	if err != nil {
		return nil, nil, errors.Wrap(errors.GetCode(err), err, "truth graph")
	}
	guess, err = graph.FromEdges(req.Nodes, toEdges(req.GuessEdges))
	if err != nil {
		return nil, nil, errors.Wrap(errors.GetCode(err), err, "guess graph")
	}
	return truth, guess, nil
}

func toEdges(pairs []edgePair) []graph.Edge {
	edges := make([]graph.Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = graph.Edge{From: p[0], To: p[1]}
	}
	return edges
}

// distanceResponse is the reply for /v1/distance.
type distanceResponse struct {
	Metric   string  `json:"metric"`
	Distance float64 `json:"distance"`
	Mistakes int     `json:"mistakes"`
	Pairs    int     `json:"pairs"`
	Cached   bool    `json:"cached"`
	RunID    string  `json:"run_id,omitempty"`
}

func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	var req distanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request body"))
		return
	}
	truth, guess, err := req.graphs()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.ExecuteGraphs(r.Context(), truth, guess, pipeline.Options{
		Metric:     req.Metric,
		Treatments: req.Treatments,
		Effects:    req.Effects,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := distanceResponse{
		Metric:   res.Metric,
		Distance: res.Distance.Distance,
		Mistakes: res.Distance.Mistakes,
		Pairs:    res.Distance.Pairs,
		Cached:   res.Cached,
	}
	if res.Run != nil {
		resp.RunID = res.Run.ID
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req distanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request body"))
		return
	}
	truth, guess, err := req.graphs()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	svg, err := render.SVG(render.ComparisonDOT(truth, guess, render.Options{}))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "rendering comparison"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.List(r.Context(), 100)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	s.logger.Warn("request failed", "method", r.Method, "path", r.URL.Path, "err", err)

	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case stderrors.Is(err, results.ErrNotFound), code == errors.ErrCodeNotFound, code == errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case code != "" && code != errors.ErrCodeInternal:
		status = http.StatusBadRequest
	}
	if code == "" {
		if stderrors.Is(err, results.ErrNotFound) {
			code = errors.ErrCodeNotFound
		} else {
			code = errors.ErrCodeInternal
		}
	}
	s.writeJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}
