package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/causalbench/adjid/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// Names labels nodes by name instead of index. Length must match the
	// node count when set.
	Names []string

	// RankDir sets the Graphviz layout direction; empty means "TB".
	RankDir string
}

func (o Options) label(v int) string {
	if v < len(o.Names) {
		return o.Names[v]
	}
	return strconv.Itoa(v)
}

func (o Options) rankDir() string {
	if o.RankDir == "" {
		return "TB"
	}
	return o.RankDir
}

// GraphDOT converts a single DAG to Graphviz DOT format.
func GraphDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf, opts)
	writeNodes(&buf, g.NodeCount(), opts)
	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", opts.label(e.From), opts.label(e.To))
	}
	buf.WriteString("}\n")
	return buf.String()
}

// ComparisonDOT overlays guess on truth and colors each edge by agreement
// class. Both graphs must have the same node count.
func ComparisonDOT(truth, guess *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf, opts)
	writeNodes(&buf, truth.NodeCount(), opts)
	buf.WriteString("\n")

	for _, e := range truth.Edges() {
		from, to := opts.label(e.From), opts.label(e.To)
		switch {
		case guess.HasEdge(e.From, e.To):
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		case guess.HasEdge(e.To, e.From):
			fmt.Fprintf(&buf, "  %q -> %q [color=purple, dir=both, arrowtail=empty];\n", from, to)
		default:
			fmt.Fprintf(&buf, "  %q -> %q [color=red, style=dashed];\n", from, to)
		}
	}
	for _, e := range guess.Edges() {
		if truth.HasEdge(e.From, e.To) || truth.HasEdge(e.To, e.From) {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [color=orange, style=dashed];\n",
			opts.label(e.From), opts.label(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeHeader(buf *bytes.Buffer, opts Options) {
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(buf, "  rankdir=%s;\n", opts.rankDir())
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
}

func writeNodes(buf *bytes.Buffer, n int, opts Options) {
	for v := 0; v < n; v++ {
		fmt.Fprintf(buf, "  %q;\n", opts.label(v))
	}
}
