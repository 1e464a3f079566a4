// Package pkg provides the core libraries for adjid causal graph comparison.
//
// # Overview
//
// adjid measures how far a hypothesized causal DAG is from a reference DAG
// in terms of the causal inferences it licenses. The adjustment
// identification distances (AID) count ordered treatment/effect pairs on
// which an adjustment set read off the guess graph is not valid in the
// truth graph. The pkg directory is organized into four main areas:
//
//  1. Core domain (graph, adjustment, metrics) - graph model and distances
//  2. I/O (fixtures, io, matrix, httputil) - fixture formats and fetching
//  3. Infrastructure (cache, results, observability, errors) - caching,
//     run persistence, hooks, structured errors
//  4. Orchestration (pipeline, server, render) - load → compute → render
//
// # Architecture
//
// The typical data flow:
//
//	Fixture file / JSON payload / URL
//	         ↓
//	    [fixtures] package (parse into canonical graphs)
//	         ↓
//	    [metrics] package (distance over [adjustment] verification)
//	         ↓
//	    [pipeline] package (caching, persistence, rendering)
//	         ↓
//	    CLI output / HTTP response / SVG comparison
//
// # Quick Start
//
// Load two graphs and compute a distance:
//
//	import (
//	    "github.com/causalbench/adjid/pkg/fixtures"
//	    "github.com/causalbench/adjid/pkg/matrix"
//	    "github.com/causalbench/adjid/pkg/metrics"
//	)
//
//	truth, _ := fixtures.LoadGraph("truth.mtx", matrix.RowToColumn)
//	guess, _ := fixtures.LoadGraph("guess.mtx", matrix.RowToColumn)
//	result, _ := metrics.ParentAID(truth, guess)
//	fmt.Println(result) // e.g. "0.400000 (8/20)"
//
// # Main Packages
//
// ## Core Domain
//
// [graph] - Immutable directed acyclic graphs in CSR form with sorted
// parent and child adjacency, eager validation and reachability queries.
//
// [adjustment] - Adjustment set policies (parent, ancestor, optimal) and
// the one-pass walk that classifies, for a treatment and candidate set Z,
// every node as descendant and/or non-amenable to adjustment.
//
// [metrics] - The distances: parent-AID, ancestor-AID, oset-AID, SID and
// SHD, each parallelized across treatments.
//
// ## I/O
//
// [fixtures] - Edge-triplet matrix listings, JSON node-link documents and
// delimited distance tables.
//
// [io] - The JSON node-link codec used by fixtures and the HTTP API.
//
// [matrix] - Dense and sparse adjacency input with an explicit edge
// direction convention.
//
// [httputil] - Cached, retrying fetch of fixtures published at URLs.
//
// ## Infrastructure
//
// [cache] - Distance result caching with file, redis and null backends,
// keyed by canonical graph hashes.
//
// [results] - Persisted run records with file and MongoDB stores.
//
// [observability] - Hook interfaces for compute, cache and HTTP events
// with no-op defaults.
//
// [errors] - Structured errors with machine-readable codes.
//
// ## Orchestration
//
// [pipeline] - The load → compute → render pipeline shared by CLI and API.
//
// [server] - The go-chi HTTP API.
//
// [render] - DOT/SVG/PNG drawings of graphs and truth/guess comparisons.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/metrics/...    # Specific package
//	go test -bench . ./pkg/...   # Include benchmarks
//
// [graph]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/graph
// [adjustment]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/adjustment
// [metrics]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/metrics
// [fixtures]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/fixtures
// [io]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/io
// [matrix]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/matrix
// [httputil]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/httputil
// [cache]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/cache
// [results]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/results
// [observability]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/server
// [render]: https://pkg.go.dev/github.com/causalbench/adjid/pkg/render
package pkg
