package graph

import (
	"sort"

	"github.com/causalbench/adjid/pkg/errors"
)

// Edge is a directed edge From -> To between two node indices.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph is an immutable directed acyclic graph over nodes [0, n).
//
// Adjacency is stored CSR-style: parentArena holds the concatenated,
// ascending-sorted parent lists of all nodes, and parentOff[v]:parentOff[v+1]
// delimits node v's slice of it (childArena/childOff likewise). The zero
// value is not usable - use FromEdges.
type Graph struct {
	n int
	m int

	parentOff   []int
	parentArena []int
	childOff    []int
	childArena  []int

	topo []int // topological order, ascending-index tie-break
}

// FromEdges builds a Graph with n nodes from a canonical edge list.
//
// It fails with an INVALID_NODE error if any endpoint is outside [0, n) or an
// edge is a self-loop (self-loops are rejected, never dropped), with an
// INVALID_FORMAT error on a duplicate edge, and with a CYCLIC_GRAPH error if
// the edge relation contains a directed cycle. Validation is eager: no Graph
// value exists unless all checks pass.
func FromEdges(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidNode, "node count must be non-negative, got %d", n)
	}
	for _, e := range edges {
		if err := errors.ValidateNode(e.From, n); err != nil {
			return nil, err
		}
		if err := errors.ValidateNode(e.To, n); err != nil {
			return nil, err
		}
		if e.From == e.To {
			return nil, errors.New(errors.ErrCodeInvalidNode, "self-loop on node %d", e.From)
		}
	}

	g := &Graph{n: n, m: len(edges)}

	inDeg := make([]int, n)
	outDeg := make([]int, n)
	for _, e := range edges {
		outDeg[e.From]++
		inDeg[e.To]++
	}

	g.parentOff = offsets(inDeg)
	g.childOff = offsets(outDeg)
	g.parentArena = make([]int, len(edges))
	g.childArena = make([]int, len(edges))

	fillP := make([]int, n)
	fillC := make([]int, n)
	for _, e := range edges {
		g.parentArena[g.parentOff[e.To]+fillP[e.To]] = e.From
		fillP[e.To]++
		g.childArena[g.childOff[e.From]+fillC[e.From]] = e.To
		fillC[e.From]++
	}

	// Neighborhoods are kept ascending so iteration order (and everything
	// derived from it) is deterministic.
	for v := 0; v < n; v++ {
		sort.Ints(g.parentArena[g.parentOff[v]:g.parentOff[v+1]])
		sort.Ints(g.childArena[g.childOff[v]:g.childOff[v+1]])
	}

	for v := 0; v < n; v++ {
		if hasAdjacentDuplicate(g.Children(v)) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate edge out of node %d", v)
		}
	}

	topo, err := topoOrder(g)
	if err != nil {
		return nil, err
	}
	g.topo = topo

	return g, nil
}

func offsets(degrees []int) []int {
	off := make([]int, len(degrees)+1)
	for v, d := range degrees {
		off[v+1] = off[v] + d
	}
	return off
}

func hasAdjacentDuplicate(sorted []int) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}

// NodeCount returns the number of nodes n.
func (g *Graph) NodeCount() int { return g.n }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return g.m }

// Parents returns the parents of v in ascending order.
// The returned slice aliases internal storage and must not be modified.
func (g *Graph) Parents(v int) []int {
	return g.parentArena[g.parentOff[v]:g.parentOff[v+1]]
}

// Children returns the children of v in ascending order.
// The returned slice aliases internal storage and must not be modified.
func (g *Graph) Children(v int) []int {
	return g.childArena[g.childOff[v]:g.childOff[v+1]]
}

// InDegree returns the number of parents of v.
func (g *Graph) InDegree(v int) int { return g.parentOff[v+1] - g.parentOff[v] }

// OutDegree returns the number of children of v.
func (g *Graph) OutDegree(v int) int { return g.childOff[v+1] - g.childOff[v] }

// HasEdge reports whether the edge u -> v exists.
// Runs in O(log deg(u)) via binary search on the sorted child list.
func (g *Graph) HasEdge(u, v int) bool {
	children := g.Children(u)
	i := sort.SearchInts(children, v)
	return i < len(children) && children[i] == v
}

// Edges returns all edges, ordered by source node then target node.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.m)
	for v := 0; v < g.n; v++ {
		for _, c := range g.Children(v) {
			edges = append(edges, Edge{From: v, To: c})
		}
	}
	return edges
}

// TopoOrder returns a topological order of the nodes: parents before
// children, with equal in-degree ties broken by ascending node index.
// The returned slice is a copy and safe to modify.
func (g *Graph) TopoOrder() []int {
	out := make([]int, len(g.topo))
	copy(out, g.topo)
	return out
}
