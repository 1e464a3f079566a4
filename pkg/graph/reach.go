package graph

import "github.com/bits-and-blooms/bitset"

// Reach holds precomputed ancestor and descendant bitsets for every node of
// a Graph. It is built once per graph (a single topological sweep with
// set-union propagation, O(n^2/64 + n*m/64) word operations) and is strictly
// read-only afterwards, so it can be shared across worker goroutines without
// locking.
//
// Convention: a node is not its own ancestor or descendant. u is an ancestor
// of v iff there is a directed path u -> ... -> v of length >= 1.
type Reach struct {
	n    int
	anc  []*bitset.BitSet
	desc []*bitset.BitSet
}

// NewReach computes the full reachability tables for g.
func NewReach(g *Graph) *Reach {
	n := g.NodeCount()
	r := &Reach{
		n:    n,
		anc:  make([]*bitset.BitSet, n),
		desc: make([]*bitset.BitSet, n),
	}
	for v := 0; v < n; v++ {
		r.anc[v] = bitset.New(uint(n))
		r.desc[v] = bitset.New(uint(n))
	}

	topo := g.TopoOrder()

	// Forward sweep: by the time v is visited every parent's ancestor set is
	// final, so anc(v) = union over parents p of anc(p) plus {p}.
	for _, v := range topo {
		for _, p := range g.Parents(v) {
			r.anc[v].InPlaceUnion(r.anc[p])
			r.anc[v].Set(uint(p))
		}
	}

	// Reverse sweep for descendants, symmetric argument over children.
	for i := len(topo) - 1; i >= 0; i-- {
		v := topo[i]
		for _, c := range g.Children(v) {
			r.desc[v].InPlaceUnion(r.desc[c])
			r.desc[v].Set(uint(c))
		}
	}

	return r
}

// NodeCount returns the number of nodes the table covers.
func (r *Reach) NodeCount() int { return r.n }

// Ancestors returns the ancestor bitset of v (v excluded).
// The returned set aliases internal storage and must not be modified.
func (r *Reach) Ancestors(v int) *bitset.BitSet { return r.anc[v] }

// Descendants returns the descendant bitset of v (v excluded).
// The returned set aliases internal storage and must not be modified.
func (r *Reach) Descendants(v int) *bitset.BitSet { return r.desc[v] }

// IsAncestor reports whether u is an ancestor of v.
func (r *Reach) IsAncestor(u, v int) bool { return r.anc[v].Test(uint(u)) }

// IsDescendant reports whether u is a descendant of v.
func (r *Reach) IsDescendant(u, v int) bool { return r.desc[v].Test(uint(u)) }

// AncestorList returns the ancestors of v as an ascending index slice.
func (r *Reach) AncestorList(v int) []int { return toList(r.anc[v]) }

// DescendantList returns the descendants of v as an ascending index slice.
func (r *Reach) DescendantList(v int) []int { return toList(r.desc[v]) }

func toList(s *bitset.BitSet) []int {
	out := make([]int, 0, s.Count())
	for i, ok := s.NextSet(0); ok; i, ok = s.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
