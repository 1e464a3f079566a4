package matrix

import (
	"sort"

	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
)

// Layout describes the memory order of a flat dense matrix.
type Layout int

const (
	// RowMajor stores entry (row, col) at data[row*n+col].
	RowMajor Layout = iota
	// ColMajor stores entry (row, col) at data[col*n+row].
	ColMajor
)

// String returns the layout name.
func (l Layout) String() string {
	if l == ColMajor {
		return "column-major"
	}
	return "row-major"
}

// FromRows builds a canonical graph from a nested dense adjacency matrix,
// rows[r][c] being entry (r, c). The matrix must be square over {0,1}.
func FromRows(rows [][]int8, dir EdgeDirection) (*graph.Graph, error) {
	n := len(rows)
	var edges []graph.Edge
	for r := 0; r < n; r++ {
		if len(rows[r]) != n {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"adjacency matrix must be square: row %d has %d columns, want %d", r, len(rows[r]), n)
		}
		for c := 0; c < n; c++ {
			from, to, keep, err := entry(rows[r][c], r, c, dir)
			if err != nil {
				return nil, err
			}
			if keep {
				edges = append(edges, graph.Edge{From: from, To: to})
			}
		}
	}
	return build(n, edges)
}

// FromDense builds a canonical graph from a flat dense adjacency matrix of
// n*n entries in the given layout.
func FromDense(n int, data []int8, layout Layout, dir EdgeDirection) (*graph.Graph, error) {
	if len(data) != n*n {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"dense matrix has %d entries, want %d for n=%d", len(data), n*n, n)
	}
	var edges []graph.Edge
	for i, v := range data {
		var r, c int
		if layout == RowMajor {
			r, c = i/n, i%n
		} else {
			r, c = i%n, i/n
		}
		from, to, keep, err := entry(v, r, c, dir)
		if err != nil {
			return nil, err
		}
		if keep {
			edges = append(edges, graph.Edge{From: from, To: to})
		}
	}
	return build(n, edges)
}

func entry(v int8, r, c int, dir EdgeDirection) (from, to int, keep bool, err error) {
	switch v {
	case 0:
		return 0, 0, false, nil
	case 1:
		from, to = dir.Orient(r, c)
		return from, to, true, nil
	default:
		return 0, 0, false, errors.New(errors.ErrCodeInvalidFormat,
			"adjacency entry (%d,%d) = %d, only 0 and 1 are supported", r, c, v)
	}
}

// build sorts edges into canonical (From, To) order so every input layout
// yields byte-identical edge sets, then defers validation to the builder.
func build(n int, edges []graph.Edge) (*graph.Graph, error) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return graph.FromEdges(n, edges)
}
