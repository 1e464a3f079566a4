package adjustment

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/causalbench/adjid/pkg/graph"
)

// searchEdge classifies the edge a search step traverses, seen from the node
// it arrives at: incoming means ... -> v, outgoing means ... <- v. edgeInit
// marks search roots.
type searchEdge int8

const (
	edgeInit searchEdge = iota
	edgeIncoming
	edgeOutgoing
)

// ruleTable decides, for a step that arrived at a node over currentEdge and
// would leave over nextEdge to nextNode, whether the search follows the step
// and whether nextNode is yielded into the result set.
type ruleTable interface {
	lookup(currentEdge, nextEdge searchEdge, nextNode int) (follow, yield bool)
}

// search is the generalized reachability search: a depth-first traversal in
// which a rule table prunes and yields steps. Each node may be visited once
// per arrival direction, which is enough because the tables only dispatch on
// edges, not on path history.
func search(g *graph.Graph, table ruleTable, start []int, yieldStart bool) *bitset.BitSet {
	n := g.NodeCount()
	result := bitset.New(uint(n))

	type step struct {
		edge searchEdge
		node int
	}
	stack := make([]step, 0, len(start))
	for _, s := range start {
		stack = append(stack, step{edgeInit, s})
		if yieldStart {
			result.Set(uint(s))
		}
	}

	visitedIn := bitset.New(uint(n))
	visitedOut := bitset.New(uint(n))

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch cur.edge {
		case edgeIncoming:
			visitedIn.Set(uint(cur.node))
		case edgeOutgoing:
			visitedOut.Set(uint(cur.node))
		}

		for _, c := range g.Children(cur.node) {
			follow, yield := table.lookup(cur.edge, edgeIncoming, c)
			if follow && !visitedIn.Test(uint(c)) {
				stack = append(stack, step{edgeIncoming, c})
			}
			if yield {
				result.Set(uint(c))
			}
		}
		for _, p := range g.Parents(cur.node) {
			follow, yield := table.lookup(cur.edge, edgeOutgoing, p)
			if follow && !visitedOut.Test(uint(p)) {
				stack = append(stack, step{edgeOutgoing, p})
			}
			if yield {
				result.Set(uint(p))
			}
		}
	}

	return result
}

// parentsTable yields the direct parents of the roots and stops.
type parentsTable struct{}

func (parentsTable) lookup(currentEdge, nextEdge searchEdge, _ int) (bool, bool) {
	if currentEdge == edgeInit && nextEdge == edgeOutgoing {
		return false, true
	}
	return false, false
}

// ancestorsTable follows and yields every step against edge direction.
type ancestorsTable struct{}

func (ancestorsTable) lookup(_, nextEdge searchEdge, _ int) (bool, bool) {
	if nextEdge == edgeOutgoing {
		return true, true
	}
	return false, false
}

// descendantsTable follows and yields every step along edge direction.
type descendantsTable struct{}

func (descendantsTable) lookup(_, nextEdge searchEdge, _ int) (bool, bool) {
	if nextEdge == edgeIncoming {
		return true, true
	}
	return false, false
}

// properAncestorsTable is ancestorsTable with the treatment set acting as a
// wall: ancestry lines running through a treatment are cut there.
type properAncestorsTable struct {
	treatments *bitset.BitSet
}

func (t properAncestorsTable) lookup(_, nextEdge searchEdge, nextNode int) (bool, bool) {
	if nextEdge == edgeOutgoing && !t.treatments.Test(uint(nextNode)) {
		return true, true
	}
	return false, false
}

// Parents returns the union of the direct parents of the start nodes.
func Parents(g *graph.Graph, start []int) *bitset.BitSet {
	return search(g, parentsTable{}, start, false)
}

// Ancestors returns all ancestors of the start nodes, start nodes included.
func Ancestors(g *graph.Graph, start []int) *bitset.BitSet {
	return search(g, ancestorsTable{}, start, true)
}

// Descendants returns all descendants of the start nodes, start nodes included.
func Descendants(g *graph.Graph, start []int) *bitset.BitSet {
	return search(g, descendantsTable{}, start, true)
}

// ProperAncestors returns the ancestors of the response nodes reachable
// without passing through a treatment, responses included.
func ProperAncestors(g *graph.Graph, treatments, responses []int) *bitset.BitSet {
	wall := bitset.New(uint(g.NodeCount()))
	for _, t := range treatments {
		wall.Set(uint(t))
	}
	return search(g, properAncestorsTable{treatments: wall}, responses, true)
}
