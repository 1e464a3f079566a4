// Package httputil provides HTTP utilities for fetching remote graph
// fixtures.
//
// # Overview
//
// Benchmark suites often publish their reference graphs at stable URLs.
// This package provides the infrastructure to load them like local files:
//
//   - [Cache]: File-based response caching
//   - [Retry]: Automatic retry with exponential backoff
//   - [Fetcher]: Cached, retrying GET of fixture bodies
//
// # Caching
//
// [Cache] stores response bodies in the filesystem (~/.cache/adjid/remote/)
// with configurable TTL, keyed by URL. Repeated benchmark runs against the
// same published fixtures then never re-download them.
//
// # Retry
//
// [Retry] re-attempts transient failures (network errors, 5xx responses,
// 429 rate limits) with exponential backoff. Permanent failures such as
// 404 are returned immediately.
package httputil
