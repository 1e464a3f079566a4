package metrics

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/causalbench/adjid/pkg/adjustment"
	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
)

// ParentAID computes the parent adjustment identification distance from
// truth to guess: every ordered node pair is checked with the parents of
// the treatment in guess as the candidate adjustment set.
func ParentAID(truth, guess *graph.Graph) (Result, error) {
	return aid(truth, guess, adjustment.PolicyParent)
}

// AncestorAID computes the ancestor adjustment identification distance from
// truth to guess, adjusting for all ancestors of the treatment in guess.
func AncestorAID(truth, guess *graph.Graph) (Result, error) {
	return aid(truth, guess, adjustment.PolicyAncestor)
}

// OsetAID computes the optimal adjustment identification distance from
// truth to guess, adjusting for the per-pair O-set read off guess.
func OsetAID(truth, guess *graph.Graph) (Result, error) {
	return aid(truth, guess, adjustment.PolicyOptimal)
}

// SID computes the structural intervention distance from truth to guess.
// For DAGs the SID coincides with the parent adjustment identification
// distance; the separate name is kept because callers ask for it by that
// name.
func SID(truth, guess *graph.Graph) (Result, error) {
	return aid(truth, guess, adjustment.PolicyParent)
}

// AID computes the adjustment identification distance from truth to guess
// under an explicit policy, over all ordered node pairs.
func AID(truth, guess *graph.Graph, policy adjustment.Policy) (Result, error) {
	return aid(truth, guess, policy)
}

// AIDForPairs computes the adjustment identification distance restricted to
// the pairs treatments x effects, pairs with equal treatment and effect
// excluded. An empty treatment or effect selection yields the zero Result.
func AIDForPairs(truth, guess *graph.Graph, policy adjustment.Policy, treatments, effects []int) (Result, error) {
	n, err := checkSizes(truth, guess)
	if err != nil {
		return Result{}, err
	}
	if err := errors.ValidateSelection(treatments, n); err != nil {
		return Result{}, err
	}
	if err := errors.ValidateSelection(effects, n); err != nil {
		return Result{}, err
	}
	if len(treatments) == 0 || len(effects) == 0 {
		return Result{}, nil
	}

	effectSet := bitset.New(uint(n))
	for _, y := range effects {
		effectSet.Set(uint(y))
	}
	pairs := len(treatments) * len(effects)
	for _, t := range treatments {
		if effectSet.Test(uint(t)) {
			pairs--
		}
	}

	mistakes := parallelSum(len(treatments), func(i int) int {
		return countMistakes(truth, guess, policy, treatments[i], effects)
	})
	return newResult(mistakes, pairs), nil
}

func aid(truth, guess *graph.Graph, policy adjustment.Policy) (Result, error) {
	n, err := checkSizes(truth, guess)
	if err != nil {
		return Result{}, err
	}
	if n < 2 {
		return Result{}, errors.New(errors.ErrCodeInvalidFormat,
			"adjustment distances need at least 2 nodes, got %d", n)
	}

	mistakes := parallelSum(n, func(t int) int {
		return countMistakes(truth, guess, policy, t, nil)
	})
	return newResult(mistakes, n*n-n), nil
}

// countMistakes runs the verifier for one treatment. effects narrows the
// effect nodes considered; nil means all nodes.
func countMistakes(truth, guess *graph.Graph, policy adjustment.Policy, t int, effects []int) int {
	n := truth.NodeCount()

	// claimEffect marks the nodes the guess claims may be effects of t.
	// The parent policy claims every non-parent, in line with the original
	// SID; the other policies claim exactly the descendants.
	var claimEffect func(y int) bool
	var zGuess *bitset.BitSet
	var descGuess *bitset.BitSet

	switch policy {
	case adjustment.PolicyParent:
		zGuess = adjustment.ParentSet(guess, t)
		claimEffect = func(y int) bool { return !zGuess.Test(uint(y)) }
	case adjustment.PolicyAncestor:
		zGuess = adjustment.AncestorSet(guess, t)
		descGuess = adjustment.Descendants(guess, []int{t})
		claimEffect = func(y int) bool { return descGuess.Test(uint(y)) }
	case adjustment.PolicyOptimal:
		descGuess = adjustment.Descendants(guess, []int{t})
		claimEffect = func(y int) bool { return descGuess.Test(uint(y)) }
	}

	// The optimal policy derives a fresh set per pair, so the truth walk
	// runs per claimed effect; the other two verify one set per treatment.
	var descTruth, notValid *bitset.BitSet
	if policy == adjustment.PolicyOptimal {
		descTruth = adjustment.Descendants(truth, []int{t})
	} else {
		descTruth, notValid = adjustment.Evaluate(truth, t, zGuess)
	}

	mistake := func(y int) bool {
		if !claimEffect(y) {
			// The guess rules y out as an effect of t; that is wrong iff
			// the truth has y downstream of t.
			return descTruth.Test(uint(y))
		}
		if policy == adjustment.PolicyOptimal {
			z := adjustment.OptimalSet(guess, []int{t}, y, descGuess)
			_, nva := adjustment.Evaluate(truth, t, z)
			return nva.Test(uint(y))
		}
		return notValid.Test(uint(y))
	}

	count := 0
	if effects == nil {
		for y := 0; y < n; y++ {
			if y != t && mistake(y) {
				count++
			}
		}
		return count
	}
	for _, y := range effects {
		if y != t && mistake(y) {
			count++
		}
	}
	return count
}

func checkSizes(truth, guess *graph.Graph) (int, error) {
	n := truth.NodeCount()
	if g := guess.NodeCount(); g != n {
		return 0, errors.New(errors.ErrCodeSizeMismatch,
			"graphs have different node counts: truth %d, guess %d", n, g)
	}
	return n, nil
}
