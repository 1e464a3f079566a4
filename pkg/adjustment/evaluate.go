package adjustment

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
)

// walkStatus tracks what kind of t-rooted walk reached a node.
type walkStatus int8

const (
	statusInit walkStatus = iota
	// statusCausalOpen: a proper causal walk (t -> ... -> v) not blocked by Z.
	statusCausalOpen
	// statusCausalBlocked: a proper causal walk blocked by Z.
	statusCausalBlocked
	// statusNonCausal: a non-causal walk not blocked by Z.
	statusNonCausal
)

// walkState is one verifier stack entry: a node together with the edge the
// walk arrived over and the status the walk carried there.
type walkState struct {
	edge   searchEdge
	node   int
	status walkStatus
}

// States are keyed (node, arrival edge in {incoming,outgoing}, status in the
// three non-init values), packed into one flat bool arena.
const statesPerNode = 6

func stateIndex(s walkState) int {
	e := 0
	if s.edge == edgeOutgoing {
		e = 1
	}
	return s.node*statesPerNode + e*3 + int(s.status-statusCausalOpen)
}

// Evaluate runs the walk-status verifier for treatment t and candidate
// adjustment set z over g. It returns, in a single traversal:
//
//   - desc: the descendant set of t, t included (every node reached by a
//     proper causal walk, open or blocked);
//   - notValid: every node y for which z is NOT a valid adjustment set
//     relative to (t, y) - reached by an unblocked non-causal walk, or by a
//     causal walk that z blocks. Members of z are not valid effects and are
//     always included.
//
// A walk may revisit nodes, so states are keyed by (node, arrival edge,
// status) rather than by node alone. The caller guarantees t is in range
// and t is not in z.
func Evaluate(g *graph.Graph, t int, z *bitset.BitSet) (desc, notValid *bitset.BitSet) {
	n := g.NodeCount()
	desc = bitset.New(uint(n))
	desc.Set(uint(t))
	notValid = z.Clone()

	visited := make([]bool, n*statesPerNode)
	stack := []walkState{{edgeInit, t, statusInit}}

	push := func(edge searchEdge, node int, status walkStatus) {
		if status == statusInit {
			return
		}
		s := walkState{edge, node, status}
		if idx := stateIndex(s); !visited[idx] {
			visited[idx] = true
			stack = append(stack, s)
		}
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch cur.status {
		case statusCausalOpen:
			desc.Set(uint(cur.node))
		case statusCausalBlocked:
			desc.Set(uint(cur.node))
			notValid.Set(uint(cur.node))
		case statusNonCausal:
			notValid.Set(uint(cur.node))
		}

		inZ := z.Test(uint(cur.node))

		// Leaving to a parent: the current node is a collider on the walk
		// exactly when the walk arrived over an incoming edge, and a
		// collider is open iff it is conditioned on.
		for _, p := range g.Parents(cur.node) {
			if p == t {
				continue
			}
			blocked := inZ
			if cur.edge == edgeIncoming {
				blocked = !inZ
			}
			push(edgeOutgoing, p, transition(cur.status, edgeOutgoing, blocked))
		}
		// Leaving to a child: the current node is a non-collider.
		for _, c := range g.Children(cur.node) {
			if c == t {
				continue
			}
			push(edgeIncoming, c, transition(cur.status, edgeIncoming, inZ))
		}
	}

	return desc, notValid
}

// transition implements the walk-status automaton. It returns the status
// the walk has after the step, or statusInit when the walk dies.
func transition(status walkStatus, move searchEdge, blocked bool) walkStatus {
	switch status {
	case statusInit:
		if move == edgeIncoming {
			return statusCausalOpen
		}
		return statusNonCausal
	case statusCausalOpen:
		if move == edgeIncoming {
			if blocked {
				return statusCausalBlocked
			}
			return statusCausalOpen
		}
		// Turning against the arrows ends the causal stretch; only an
		// open walk survives as a non-causal one.
		if !blocked {
			return statusNonCausal
		}
		return statusInit
	case statusCausalBlocked:
		if move == edgeIncoming {
			return statusCausalBlocked
		}
		return statusInit
	case statusNonCausal:
		if !blocked {
			return statusNonCausal
		}
		return statusInit
	}
	return statusInit
}

// Valid reports whether z is a valid adjustment set relative to the ordered
// pair (t, y) in g under the generalized back-door criterion. It returns an
// INVALID_PAIR error when t == y or when t or y is a member of z.
func Valid(g *graph.Graph, t, y int, z *bitset.BitSet) (bool, error) {
	if err := errors.ValidatePair(t, y, g.NodeCount()); err != nil {
		return false, err
	}
	if z.Test(uint(t)) || z.Test(uint(y)) {
		return false, errors.New(errors.ErrCodeInvalidPair,
			"adjustment set must not contain treatment %d or effect %d", t, y)
	}
	_, notValid := Evaluate(g, t, z)
	return !notValid.Test(uint(y)), nil
}
