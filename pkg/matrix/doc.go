// Package matrix normalizes adjacency-matrix representations into the
// canonical graph.Graph form.
//
// Callers hand over an n x n {0,1} adjacency relation in whichever shape
// they have it - dense row-major, dense column-major, compressed sparse row
// or compressed sparse column - together with an edge-direction convention
// saying which axis denotes "parent -> child". Every loader produces the
// exact same canonical edge set for the same underlying relation, so all
// downstream metrics are layout-invariant by construction.
//
// Values other than 0 and 1 are rejected: partially directed input (the
// 2-coded undirected edges of CPDAG conventions) is out of scope for this
// module and is never silently repaired.
package matrix
