package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
)

// document is the JSON node-link shape.
type document struct {
	Nodes int          `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

// ReadJSON decodes a JSON node-link document from r into a graph.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or invalid
//   - An edge references a node outside [0, nodes)
//   - The same edge appears twice
//   - The edges contain a directed cycle
//
// Errors carry the structured codes of the graph package, so callers can
// distinguish format problems from constraint violations with errors.Is.
//
// The returned graph is independent of r and can be used safely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding graph document")
	}
	return graph.FromEdges(doc.Nodes, doc.Edges)
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. A missing file yields a FILE_NOT_FOUND error; decoding failures
// carry the same codes as [ReadJSON].
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph document %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "opening graph document %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
