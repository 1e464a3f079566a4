// Package render draws DAGs and DAG comparisons as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as circles connected by arrows. A comparison diagram overlays
// a guess graph on a truth graph and colors every edge by its agreement
// class, which makes the structural mistakes behind a distance score visible
// at a glance.
//
// # Usage
//
// Convert a graph or a comparison to DOT format, then render to SVG:
//
//	dot := render.ComparisonDOT(truth, guess, render.Options{})
//	svg, err := render.SVG(dot)
//
// # Edge classes
//
// Comparison diagrams use four classes:
//
//   - shared: edge present in both graphs, same orientation (solid black)
//   - reversed: edge present in both, opposite orientation (solid purple)
//   - missing: edge in truth only (dashed red)
//   - extra: edge in guess only (dashed orange)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. The DOT source can also be saved and processed with external
// Graphviz tools.
package render
