// Package graph implements the canonical DAG representation used by every
// distance metric in this module.
//
// Nodes are integer indices in [0, n); identity is positional and no external
// labels are retained. The graph stores parent and child adjacency in flat
// index arenas (one shared backing slice per direction, with per-node
// offsets), so traversal never chases pointers and the whole structure is
// cheap to share read-only across worker goroutines.
//
// Construction validates eagerly: edges referencing indices outside [0, n),
// self-loops, and directed cycles are all rejected with structured errors
// before a Graph value is ever returned. A constructed Graph is immutable.
//
// The Reach type precomputes ancestor and descendant bitsets for every node
// in a single topological sweep. Distance engines build one Reach per graph
// up front and then share it read-only across parallel pair evaluations.
package graph
