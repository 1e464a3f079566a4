package graph

import (
	"container/heap"

	"github.com/causalbench/adjid/pkg/errors"
)

// intHeap is a min-heap of node indices, used to make Kahn's algorithm pick
// the lowest-index ready node first so topological order is reproducible.
type intHeap []int

func (h intHeap) Len() int           { return len(h) }
func (h intHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topoOrder runs Kahn's algorithm over g. It returns a CYCLIC_GRAPH error if
// not every node can be emitted, which is the acyclicity check for FromEdges.
func topoOrder(g *Graph) ([]int, error) {
	inDeg := make([]int, g.n)
	ready := &intHeap{}
	for v := 0; v < g.n; v++ {
		inDeg[v] = g.InDegree(v)
		if inDeg[v] == 0 {
			*ready = append(*ready, v)
		}
	}
	heap.Init(ready)

	order := make([]int, 0, g.n)
	for ready.Len() > 0 {
		v := heap.Pop(ready).(int)
		order = append(order, v)
		for _, c := range g.Children(v) {
			inDeg[c]--
			if inDeg[c] == 0 {
				heap.Push(ready, c)
			}
		}
	}

	if len(order) != g.n {
		return nil, errors.New(errors.ErrCodeCyclicGraph,
			"edge relation contains a directed cycle (%d of %d nodes ordered)", len(order), g.n)
	}
	return order, nil
}
