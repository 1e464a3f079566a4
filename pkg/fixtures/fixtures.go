// Package fixtures reads and writes the on-disk formats used for test
// graphs and reference distance tables: edge-triplet graph listings in the
// MatrixMarket coordinate style, JSON node-link documents, and delimited
// numeric tables with a single header row. The core packages never touch
// these files themselves.
package fixtures

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
	graphio "github.com/causalbench/adjid/pkg/io"
	"github.com/causalbench/adjid/pkg/matrix"
)

// LoadGraph reads a graph fixture, dispatching on the file extension:
// ".json" is parsed as a JSON node-link document, everything else as an
// edge-triplet listing.
func LoadGraph(path string, dir matrix.EdgeDirection) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph fixture %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "opening graph fixture %s", path)
	}
	defer f.Close()
	return ParseGraph(path, f, dir)
}

// ParseGraph reads a graph fixture from r. The name selects the format by
// extension as in LoadGraph and labels parse errors; it may be a file path
// or a URL.
func ParseGraph(name string, r io.Reader, dir matrix.EdgeDirection) (*graph.Graph, error) {
	if filepath.Ext(name) == ".json" {
		return graphio.ReadJSON(r)
	}
	return parseMatrix(name, r, dir)
}

// parseMatrix reads an edge-triplet graph listing. The first line is a
// banner and is skipped, the second line carries "rows cols [entries]",
// and every following non-empty line is a 1-based "i j" coordinate pair
// meaning a 1 at matrix position (i, j). dir fixes which axis is the
// parent.
func parseMatrix(path string, r io.Reader, dir matrix.EdgeDirection) (*graph.Graph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !scanner.Scan() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "graph fixture %s is empty", path)
	}
	if !scanner.Scan() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "graph fixture %s has no size line", path)
	}
	dims := strings.Fields(scanner.Text())
	if len(dims) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"graph fixture %s: size line %q needs rows and cols", path, scanner.Text())
	}
	rows, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "graph fixture %s: bad row count", path)
	}
	cols, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "graph fixture %s: bad column count", path)
	}
	if rows != cols {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"graph fixture %s: adjacency matrix must be square, got %dx%d", path, rows, cols)
	}

	var edges []graph.Edge
	line := 2
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 3 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"graph fixture %s:%d: want \"i j\" or \"i j value\", got %q", path, line, scanner.Text())
		}
		i, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "graph fixture %s:%d", path, line)
		}
		j, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "graph fixture %s:%d", path, line)
		}
		if len(fields) == 3 && fields[2] != "1" {
			// Edge codes other than 1 encode partially directed graphs.
			return nil, errors.New(errors.ErrCodeUnsupported,
				"graph fixture %s:%d: edge code %s not supported, only directed edges", path, line, fields[2])
		}
		if i < 1 || i > rows || j < 1 || j > cols {
			return nil, errors.New(errors.ErrCodeInvalidNode,
				"graph fixture %s:%d: coordinate (%d,%d) outside %dx%d", path, line, i, j, rows, cols)
		}
		from, to := dir.Orient(i-1, j-1)
		edges = append(edges, graph.Edge{From: from, To: to})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "reading graph fixture %s", path)
	}

	return graph.FromEdges(rows, edges)
}

// SaveGraph writes g in a format LoadGraph reads back: a JSON node-link
// document when path ends in ".json", otherwise the edge-triplet listing
// with coordinates oriented row-to-column.
func SaveGraph(path string, g *graph.Graph) error {
	if filepath.Ext(path) == ".json" {
		return graphio.ExportJSON(g, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "creating graph fixture %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "%%MatrixMarket matrix coordinate pattern general")
	fmt.Fprintf(w, "%d %d %d\n", g.NodeCount(), g.NodeCount(), g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(w, "%d %d\n", e.From+1, e.To+1)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "writing graph fixture %s", path)
	}
	return nil
}

// Table is a delimited numeric table: one header row naming the columns,
// every following row parsed as floats.
type Table struct {
	Header []string
	Rows   [][]float64
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	for i, h := range t.Header {
		if h != name {
			continue
		}
		out := make([]float64, len(t.Rows))
		for r, row := range t.Rows {
			out[r] = row[i]
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "table has no column %q", name)
}

// LoadTable reads a delimited numeric table, comma-separated by default.
func LoadTable(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "table fixture %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "opening table fixture %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if comma != 0 {
		r.Comma = comma
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing table fixture %s", path)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "table fixture %s is empty", path)
	}

	t := &Table{Header: records[0], Rows: make([][]float64, 0, len(records)-1)}
	for i, rec := range records[1:] {
		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err,
					"table fixture %s row %d column %q", path, i+2, t.Header[j])
			}
			row[j] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
