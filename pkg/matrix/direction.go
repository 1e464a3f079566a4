package matrix

import "github.com/causalbench/adjid/pkg/errors"

// EdgeDirection selects which axis of an adjacency matrix denotes the
// parent -> child direction. It must be honored identically for both graphs
// of a comparison; transposing both matrices and flipping the direction
// yields an identical canonical graph.
type EdgeDirection int

const (
	// RowToColumn means adjacency[i][j] = 1 encodes the edge i -> j.
	RowToColumn EdgeDirection = iota
	// ColumnToRow means adjacency[i][j] = 1 encodes the edge j -> i.
	ColumnToRow
)

// String returns the configuration spelling of the direction.
func (d EdgeDirection) String() string {
	switch d {
	case RowToColumn:
		return "row-to-column"
	case ColumnToRow:
		return "column-to-row"
	default:
		return "unknown"
	}
}

// ParseEdgeDirection parses the two recognized configuration spellings.
func ParseEdgeDirection(s string) (EdgeDirection, error) {
	switch s {
	case "row-to-column":
		return RowToColumn, nil
	case "column-to-row":
		return ColumnToRow, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidFormat,
			"unknown edge direction %q (want row-to-column or column-to-row)", s)
	}
}

// Orient turns a matrix coordinate into a directed edge under d.
func (d EdgeDirection) Orient(row, col int) (from, to int) {
	if d == RowToColumn {
		return row, col
	}
	return col, row
}
