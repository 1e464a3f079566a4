// Package io serializes graphs as JSON node-link documents.
//
// # Format
//
// A graph is a JSON object with a node count and an edge array:
//
//	{
//	  "nodes": 3,
//	  "edges": [
//	    {"from": 0, "to": 1},
//	    {"from": 1, "to": 2}
//	  ]
//	}
//
// Node indices are zero-based. The edge direction is explicit, so unlike
// the matrix fixture format no adjacency convention applies.
//
// The format round-trips: a graph written with [WriteJSON] decodes to an
// identical graph with [ReadJSON]. Decoding validates the graph the same
// way direct construction does, so malformed documents (out-of-range
// indices, duplicate edges, cycles) are rejected with structured errors.
package io
