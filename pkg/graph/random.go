package graph

import "math/rand"

// Random generates a random DAG with n nodes. Each forward pair (i, j) with
// i < j carries an edge with probability density, so the result is acyclic
// by construction. The same seed always yields the same graph, which the
// determinism tests and benchmarks rely on.
func Random(n int, density float64, seed int64) *Graph {
	rng := rand.New(rand.NewSource(seed))
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < density {
				edges = append(edges, Edge{From: i, To: j})
			}
		}
	}
	g, err := FromEdges(n, edges)
	if err != nil {
		// Upper-triangular edges cannot produce cycles, loops or duplicates.
		panic(err)
	}
	return g
}
