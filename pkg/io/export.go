package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
)

// WriteJSON encodes a graph as a JSON node-link document and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	doc := document{Nodes: g.NodeCount(), Edges: g.Edges()}
	if doc.Edges == nil {
		doc.Edges = []graph.Edge{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding graph document")
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "creating graph document %s", path)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
