// Package pipeline provides the core computation pipeline for adjid.
//
// This package implements the complete load → compute → render flow that
// can be used by CLI, API, and batch components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the truth and guess graphs from fixture files
//  2. Compute: Evaluate the requested distance metric, with result caching
//  3. Render: Optionally draw the comparison (DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    TruthPath: "truth.mtx",
//	    GuessPath: "guess.mtx",
//	    Metric:    pipeline.MetricParentAID,
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/causalbench/adjid/pkg/adjustment"
	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
	"github.com/causalbench/adjid/pkg/matrix"
	"github.com/causalbench/adjid/pkg/metrics"
	"github.com/causalbench/adjid/pkg/results"
)

// Metric name constants, shared by CLI flags, API payloads and cache keys.
const (
	MetricParentAID   = "parent-aid"
	MetricAncestorAID = "ancestor-aid"
	MetricOsetAID     = "oset-aid"
	MetricSID         = "sid"
	MetricSHD         = "shd"
)

// ValidMetrics is the set of supported metric names.
var ValidMetrics = map[string]bool{
	MetricParentAID:   true,
	MetricAncestorAID: true,
	MetricOsetAID:     true,
	MetricSID:         true,
	MetricSHD:         true,
}

// Format constants for render artifacts.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// DefaultCacheTTL is how long cached distance results stay valid. Results
// are pure functions of their inputs, so the TTL only bounds cache growth.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Options configures one pipeline execution.
type Options struct {
	// TruthPath and GuessPath locate the two graph fixtures.
	TruthPath string
	GuessPath string

	// EdgeDirection fixes the adjacency convention for both files.
	EdgeDirection matrix.EdgeDirection

	// Metric selects the distance; one of the Metric* constants.
	Metric string

	// Treatments and Effects restrict the compared pairs. Nil means all
	// ordered pairs. Not supported for the SHD metric.
	Treatments []int
	Effects    []int

	// Formats lists render artifacts to produce; empty means none.
	Formats []string

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration
}

// ValidateAndSetDefaults checks the options and fills defaults in place.
func (o *Options) ValidateAndSetDefaults() error {
	if o.TruthPath == "" || o.GuessPath == "" {
		return errors.New(errors.ErrCodeInvalidPath, "both truth and guess graph paths are required")
	}
	if o.Metric == "" {
		o.Metric = MetricParentAID
	}
	if !ValidMetrics[o.Metric] {
		return errors.New(errors.ErrCodeUnsupported, "unknown metric %q", o.Metric)
	}
	if o.Metric == MetricSHD && (len(o.Treatments) > 0 || len(o.Effects) > 0) {
		return errors.New(errors.ErrCodeInvalidSelection, "shd compares whole graphs and accepts no pair selection")
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeUnsupported, "unknown render format %q", f)
		}
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return nil
}

func (o *Options) selected() bool {
	return o.Treatments != nil || o.Effects != nil
}

// Result is the outcome of one pipeline execution.
type Result struct {
	// Metric echoes the computed metric name.
	Metric string

	// Distance is the computed distance result.
	Distance metrics.Result

	// Truth and Guess are the loaded graphs, available for re-rendering.
	Truth *graph.Graph
	Guess *graph.Graph

	// Cached is true when the distance came from the cache.
	Cached bool

	// Run is the persisted run record, when a store is configured.
	Run *results.Run

	// Artifacts holds rendered outputs by format name.
	Artifacts map[string][]byte

	// Elapsed is the compute-stage wall time (zero on cache hits).
	Elapsed time.Duration
}

// Compute dispatches a metric over two loaded graphs. Treatments and
// effects narrow the pairs; nil means all.
func Compute(truth, guess *graph.Graph, metric string, treatments, effects []int) (metrics.Result, error) {
	selected := treatments != nil || effects != nil

	var policy adjustment.Policy
	switch metric {
	case MetricParentAID, MetricSID:
		policy = adjustment.PolicyParent
	case MetricAncestorAID:
		policy = adjustment.PolicyAncestor
	case MetricOsetAID:
		policy = adjustment.PolicyOptimal
	case MetricSHD:
		if selected {
			return metrics.Result{}, errors.New(errors.ErrCodeInvalidSelection,
				"shd compares whole graphs and accepts no pair selection")
		}
		return metrics.SHD(truth, guess)
	default:
		return metrics.Result{}, errors.New(errors.ErrCodeUnsupported, "unknown metric %q", metric)
	}

	if selected {
		return metrics.AIDForPairs(truth, guess, policy, treatments, effects)
	}
	return metrics.AID(truth, guess, policy)
}
