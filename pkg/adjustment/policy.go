package adjustment

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
)

// Policy selects how a candidate adjustment set is read off a guess graph
// for a treatment-effect pair. The enumeration is closed: every consumer
// switches over all three values.
type Policy int8

const (
	// PolicyParent adjusts for the direct parents of the treatment.
	PolicyParent Policy = iota
	// PolicyAncestor adjusts for all ancestors of the treatment.
	PolicyAncestor
	// PolicyOptimal adjusts for the O-set, the parents of the proper causal
	// nodes between treatment and effect minus the treatment's descendants.
	PolicyOptimal
)

func (p Policy) String() string {
	switch p {
	case PolicyParent:
		return "parent"
	case PolicyAncestor:
		return "ancestor"
	case PolicyOptimal:
		return "optimal"
	}
	return "unknown"
}

// ParsePolicy maps the wire names "parent", "ancestor" and "optimal" back to
// their Policy values.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "parent":
		return PolicyParent, nil
	case "ancestor":
		return PolicyAncestor, nil
	case "optimal":
		return PolicyOptimal, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat,
		"unknown adjustment policy %q (want parent, ancestor or optimal)", s)
}

// ParentSet returns the parent adjustment set of t: its direct parents.
func ParentSet(g *graph.Graph, t int) *bitset.BitSet {
	return Parents(g, []int{t})
}

// AncestorSet returns the ancestor adjustment set of t: all its ancestors,
// t itself excluded.
func AncestorSet(g *graph.Graph, t int) *bitset.BitSet {
	set := Ancestors(g, []int{t})
	set.Clear(uint(t))
	return set
}

// OptimalSet returns the O-set for treatments and effect y: the parents of
// the causal nodes (proper ancestors of y intersected with descendants of
// the treatments) minus the treatment descendants. tDesc must be
// Descendants(g, treatments); it is taken as an argument so callers
// iterating over many effects of one treatment compute it once.
func OptimalSet(g *graph.Graph, treatments []int, y int, tDesc *bitset.BitSet) *bitset.BitSet {
	causal := ProperAncestors(g, treatments, []int{y})
	causal.InPlaceIntersection(tDesc)
	set := Parents(g, causalList(causal))
	set.InPlaceDifference(tDesc)
	return set
}

func causalList(set *bitset.BitSet) []int {
	out := make([]int, 0, set.Count())
	for v, ok := set.NextSet(0); ok; v, ok = set.NextSet(v + 1) {
		out = append(out, int(v))
	}
	return out
}

// ForPair derives the candidate adjustment set the policy implies for the
// ordered pair (t, y) in g. The returned set never contains t or y, so it
// can be handed to Valid directly. The pair itself is validated.
func ForPair(g *graph.Graph, p Policy, t, y int) (*bitset.BitSet, error) {
	if err := errors.ValidatePair(t, y, g.NodeCount()); err != nil {
		return nil, err
	}
	var set *bitset.BitSet
	switch p {
	case PolicyParent:
		set = ParentSet(g, t)
	case PolicyAncestor:
		set = AncestorSet(g, t)
	case PolicyOptimal:
		set = OptimalSet(g, []int{t}, y, Descendants(g, []int{t}))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown adjustment policy %d", p)
	}
	set.Clear(uint(t))
	set.Clear(uint(y))
	return set, nil
}
