package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/causalbench/adjid/pkg/cache"
	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/fixtures"
	"github.com/causalbench/adjid/pkg/graph"
	"github.com/causalbench/adjid/pkg/httputil"
	"github.com/causalbench/adjid/pkg/matrix"
	"github.com/causalbench/adjid/pkg/metrics"
	"github.com/causalbench/adjid/pkg/observability"
	"github.com/causalbench/adjid/pkg/render"
	"github.com/causalbench/adjid/pkg/results"
)

// Runner encapsulates pipeline execution with caching and optional run
// persistence. Both CLI and API use this to avoid duplicating the logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Store   results.Store     // optional; nil disables run persistence
	Fetcher *httputil.Fetcher // optional; used for http(s) fixture paths
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → compute → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	truth, err := r.Load(ctx, opts.TruthPath, opts.EdgeDirection)
	if err != nil {
		return nil, err
	}
	guess, err := r.Load(ctx, opts.GuessPath, opts.EdgeDirection)
	if err != nil {
		return nil, err
	}

	result := &Result{Metric: opts.Metric, Truth: truth, Guess: guess}
	if err := r.computeCached(ctx, result, opts); err != nil {
		return nil, err
	}

	if len(opts.Formats) > 0 {
		artifacts, err := r.Render(ctx, truth, guess, opts.Formats)
		if err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
	}

	return result, nil
}

// ExecuteGraphs runs the compute stage on graphs the caller already holds,
// with the same caching, persistence and rendering as Execute.
func (r *Runner) ExecuteGraphs(ctx context.Context, truth, guess *graph.Graph, opts Options) (*Result, error) {
	opts.TruthPath, opts.GuessPath = "-", "-"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Metric: opts.Metric, Truth: truth, Guess: guess}
	if err := r.computeCached(ctx, result, opts); err != nil {
		return nil, err
	}

	if len(opts.Formats) > 0 {
		artifacts, err := r.Render(ctx, truth, guess, opts.Formats)
		if err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
	}

	return result, nil
}

// computeCached fills result.Distance from the cache or a fresh
// computation, and persists a run record for fresh results.
func (r *Runner) computeCached(ctx context.Context, result *Result, opts Options) error {
	truth, guess := result.Truth, result.Guess

	truthHash := cache.GraphHash(truth)
	guessHash := cache.GraphHash(guess)
	key := r.Keyer.ResultKey(opts.Metric, truthHash, guessHash, opts.Treatments, opts.Effects)

	if cached, ok := r.lookup(ctx, key); ok {
		r.Logger.Debug("distance served from cache", "metric", opts.Metric, "key", key)
		result.Distance = *cached
		result.Cached = true
	} else {
		observability.Compute().OnComputeStart(ctx, opts.Metric, truth.NodeCount())
		start := time.Now()
		dist, err := Compute(truth, guess, opts.Metric, opts.Treatments, opts.Effects)
		elapsed := time.Since(start)
		observability.Compute().OnComputeComplete(ctx, opts.Metric, truth.NodeCount(), dist.Mistakes, elapsed, err)
		if err != nil {
			return err
		}
		r.Logger.Info("distance computed",
			"metric", opts.Metric,
			"nodes", truth.NodeCount(),
			"mistakes", dist.Mistakes,
			"distance", dist.Distance,
			"elapsed", elapsed)
		result.Distance = dist
		result.Elapsed = elapsed
		r.store(ctx, key, &dist, opts.CacheTTL)
	}

	if r.Store != nil && !result.Cached {
		run := results.New(opts.Metric, truthHash, guessHash, result.Distance, result.Elapsed)
		run.Treatments = opts.Treatments
		run.Effects = opts.Effects
		if err := r.Store.Save(ctx, run); err != nil {
			// Persistence failures don't invalidate the computation.
			r.Logger.Warn("failed to persist run", "err", err)
		} else {
			result.Run = run
		}
	}
	return nil
}

// Load reads one graph fixture with load instrumentation. Paths starting
// with http:// or https:// are fetched over the network.
func (r *Runner) Load(ctx context.Context, path string, dir matrix.EdgeDirection) (*graph.Graph, error) {
	observability.Compute().OnLoadStart(ctx, path)
	start := time.Now()
	g, err := r.load(ctx, path, dir)
	if err != nil {
		observability.Compute().OnLoadComplete(ctx, path, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Compute().OnLoadComplete(ctx, path, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	r.Logger.Debug("graph loaded", "path", path, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

func (r *Runner) load(ctx context.Context, path string, dir matrix.EdgeDirection) (*graph.Graph, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		fetcher := r.Fetcher
		if fetcher == nil {
			fetcher = httputil.NewFetcher(nil)
		}
		body, err := fetcher.Fetch(ctx, path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "fetching graph fixture %s", path)
		}
		return fixtures.ParseGraph(path, bytes.NewReader(body), dir)
	}
	return fixtures.LoadGraph(path, dir)
}

// Render produces comparison artifacts in the requested formats.
func (r *Runner) Render(ctx context.Context, truth, guess *graph.Graph, formats []string) (map[string][]byte, error) {
	observability.Compute().OnRenderStart(ctx, formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(formats))
	dot := render.ComparisonDOT(truth, guess, render.Options{})
	var err error
	for _, f := range formats {
		switch f {
		case FormatDOT:
			artifacts[f] = []byte(dot)
		case FormatSVG:
			artifacts[f], err = render.SVG(dot)
		case FormatPNG:
			artifacts[f], err = render.PNG(dot)
		}
		if err != nil {
			break
		}
	}

	observability.Compute().OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*metrics.Result, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache get failed", "err", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	var dist metrics.Result
	if err := json.Unmarshal(data, &dist); err != nil {
		r.Logger.Warn("cache entry corrupt, ignoring", "key", key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	return &dist, true
}

func (r *Runner) store(ctx context.Context, key string, dist *metrics.Result, ttl time.Duration) {
	data, err := json.Marshal(dist)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache set failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "result", len(data))
}
