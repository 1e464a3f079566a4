package matrix

import (
	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
)

// FromCSR builds a canonical graph from a compressed-sparse-row adjacency
// matrix: indptr has n+1 entries and indices[indptr[r]:indptr[r+1]] lists
// the columns with a 1 in row r. All stored entries are implicitly 1.
func FromCSR(n int, indptr, indices []int, dir EdgeDirection) (*graph.Graph, error) {
	return fromCompressed(n, indptr, indices, dir, true)
}

// FromCSC builds a canonical graph from a compressed-sparse-column
// adjacency matrix: indices[indptr[c]:indptr[c+1]] lists the rows with a 1
// in column c.
func FromCSC(n int, indptr, indices []int, dir EdgeDirection) (*graph.Graph, error) {
	return fromCompressed(n, indptr, indices, dir, false)
}

func fromCompressed(n int, indptr, indices []int, dir EdgeDirection, rowOuter bool) (*graph.Graph, error) {
	if len(indptr) != n+1 {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"compressed matrix indptr has %d entries, want %d", len(indptr), n+1)
	}
	if indptr[0] != 0 || indptr[n] != len(indices) {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"compressed matrix indptr must start at 0 and end at len(indices)=%d", len(indices))
	}

	var edges []graph.Edge
	for outer := 0; outer < n; outer++ {
		lo, hi := indptr[outer], indptr[outer+1]
		if lo > hi {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"compressed matrix indptr not monotone at index %d", outer)
		}
		for _, inner := range indices[lo:hi] {
			if inner < 0 || inner >= n {
				return nil, errors.New(errors.ErrCodeInvalidNode,
					"compressed matrix index %d out of range [0,%d)", inner, n)
			}
			r, c := outer, inner
			if !rowOuter {
				r, c = inner, outer
			}
			from, to := dir.Orient(r, c)
			edges = append(edges, graph.Edge{From: from, To: to})
		}
	}
	return build(n, edges)
}
