package matrix

import (
	"reflect"
	"testing"

	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
)

// 0 -> 1, 0 -> 2, 1 -> 2 as a row-to-column matrix.
var triangle = [][]int8{
	{0, 1, 1},
	{0, 0, 1},
	{0, 0, 0},
}

var triangleEdges = []graph.Edge{{From: 0, To: 1}, {From: 0, To: 2}, {From: 1, To: 2}}

func flatten(rows [][]int8, layout Layout) []int8 {
	n := len(rows)
	out := make([]int8, 0, n*n)
	if layout == RowMajor {
		for r := 0; r < n; r++ {
			out = append(out, rows[r]...)
		}
		return out
	}
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			out = append(out, rows[r][c])
		}
	}
	return out
}

func transpose(rows [][]int8) [][]int8 {
	n := len(rows)
	out := make([][]int8, n)
	for r := range out {
		out[r] = make([]int8, n)
		for c := 0; c < n; c++ {
			out[r][c] = rows[c][r]
		}
	}
	return out
}

// toCompressed produces (indptr, indices) with the given axis as outer index.
func toCompressed(rows [][]int8, rowOuter bool) (indptr, indices []int) {
	n := len(rows)
	indptr = make([]int, 1, n+1)
	for outer := 0; outer < n; outer++ {
		for inner := 0; inner < n; inner++ {
			r, c := outer, inner
			if !rowOuter {
				r, c = inner, outer
			}
			if rows[r][c] != 0 {
				indices = append(indices, inner)
			}
		}
		indptr = append(indptr, len(indices))
	}
	return indptr, indices
}

// Every representation of the same matrix must normalize to the identical
// canonical edge set.
func TestFormatInvariance(t *testing.T) {
	want := triangleEdges

	csrPtr, csrIdx := toCompressed(triangle, true)
	cscPtr, cscIdx := toCompressed(triangle, false)

	tests := []struct {
		name string
		load func() (*graph.Graph, error)
	}{
		{"rows", func() (*graph.Graph, error) { return FromRows(triangle, RowToColumn) }},
		{"rows transposed flipped", func() (*graph.Graph, error) { return FromRows(transpose(triangle), ColumnToRow) }},
		{"dense row-major", func() (*graph.Graph, error) {
			return FromDense(3, flatten(triangle, RowMajor), RowMajor, RowToColumn)
		}},
		{"dense column-major", func() (*graph.Graph, error) {
			return FromDense(3, flatten(triangle, ColMajor), ColMajor, RowToColumn)
		}},
		{"csr", func() (*graph.Graph, error) { return FromCSR(3, csrPtr, csrIdx, RowToColumn) }},
		{"csc", func() (*graph.Graph, error) { return FromCSC(3, cscPtr, cscIdx, RowToColumn) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.load()
			if err != nil {
				t.Fatalf("load error = %v", err)
			}
			if got := g.Edges(); !reflect.DeepEqual(got, want) {
				t.Errorf("Edges() = %v, want %v", got, want)
			}
		})
	}
}

func TestFromRowsErrors(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]int8
		wantCode errors.Code
	}{
		{
			name:     "not square",
			rows:     [][]int8{{0, 1}, {0}},
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name:     "undirected coding rejected",
			rows:     [][]int8{{0, 2}, {0, 0}},
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name:     "self loop rejected",
			rows:     [][]int8{{1, 0}, {0, 0}},
			wantCode: errors.ErrCodeInvalidNode,
		},
		{
			name:     "cycle rejected",
			rows:     [][]int8{{0, 1}, {1, 0}},
			wantCode: errors.ErrCodeCyclicGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.rows, RowToColumn)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("FromRows() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestColumnToRowOrientation(t *testing.T) {
	// Under column-to-row, a 1 at (row 0, col 1) is the edge 1 -> 0.
	g, err := FromRows([][]int8{{0, 1}, {0, 0}}, ColumnToRow)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	want := []graph.Edge{{From: 1, To: 0}}
	if got := g.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestFromDenseSizeCheck(t *testing.T) {
	_, err := FromDense(2, []int8{0, 1, 0}, RowMajor, RowToColumn)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("FromDense() error = %v, want INVALID_FORMAT", err)
	}
}

func TestFromCompressedErrors(t *testing.T) {
	tests := []struct {
		name     string
		indptr   []int
		indices  []int
		wantCode errors.Code
	}{
		{"indptr wrong length", []int{0, 1}, []int{1}, errors.ErrCodeInvalidFormat},
		{"indptr bad tail", []int{0, 1, 2}, []int{1}, errors.ErrCodeInvalidFormat},
		{"index out of range", []int{0, 1, 1}, []int{5}, errors.ErrCodeInvalidNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromCSR(2, tt.indptr, tt.indices, RowToColumn)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("FromCSR() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestParseEdgeDirection(t *testing.T) {
	if d, err := ParseEdgeDirection("row-to-column"); err != nil || d != RowToColumn {
		t.Errorf("ParseEdgeDirection(row-to-column) = %v, %v", d, err)
	}
	if d, err := ParseEdgeDirection("column-to-row"); err != nil || d != ColumnToRow {
		t.Errorf("ParseEdgeDirection(column-to-row) = %v, %v", d, err)
	}
	if _, err := ParseEdgeDirection("diagonal"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseEdgeDirection(diagonal) error = %v, want INVALID_FORMAT", err)
	}
}
