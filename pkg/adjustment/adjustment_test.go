package adjustment

import (
	"testing"

	"github.com/bits-and-blooms/bitset"

	"github.com/causalbench/adjid/pkg/errors"
	"github.com/causalbench/adjid/pkg/graph"
)

func mustGraph(t *testing.T, n int, edges []graph.Edge) *graph.Graph {
	t.Helper()
	g, err := graph.FromEdges(n, edges)
	if err != nil {
		t.Fatalf("FromEdges() error = %v", err)
	}
	return g
}

func toSet(n int, members ...int) *bitset.BitSet {
	s := bitset.New(uint(n))
	for _, m := range members {
		s.Set(uint(m))
	}
	return s
}

func setMembers(s *bitset.BitSet) []int {
	out := []int{}
	for v, ok := s.NextSet(0); ok; v, ok = s.NextSet(v + 1) {
		out = append(out, int(v))
	}
	return out
}

func assertSet(t *testing.T, got *bitset.BitSet, want ...int) {
	t.Helper()
	if !got.Equal(toSet(int(got.Len()), want...)) {
		t.Errorf("set = %v, want %v", setMembers(got), want)
	}
}

func TestProperAncestors(t *testing.T) {
	chain := mustGraph(t, 3, []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}})
	diamond := mustGraph(t, 4, []graph.Edge{
		{From: 0, To: 1}, {From: 0, To: 2}, {From: 1, To: 3}, {From: 2, To: 3},
	})
	twoRoads := mustGraph(t, 5, []graph.Edge{
		{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 4},
		{From: 0, To: 3}, {From: 3, To: 4},
	})

	tests := []struct {
		name       string
		g          *graph.Graph
		treatments []int
		responses  []int
		want       []int
	}{
		{"chain no wall", chain, nil, []int{2}, []int{0, 1, 2}},
		{"chain wall at 1", chain, []int{1}, []int{2}, []int{2}},
		{"chain wall at 0", chain, []int{0}, []int{2}, []int{1, 2}},
		{"diamond no wall", diamond, nil, []int{3}, []int{0, 1, 2, 3}},
		{"diamond wall at 1", diamond, []int{1}, []int{3}, []int{0, 2, 3}},
		{"two roads no wall", twoRoads, nil, []int{4}, []int{0, 1, 2, 3, 4}},
		{"two roads wall at 2", twoRoads, []int{2}, []int{4}, []int{0, 3, 4}},
		{"two roads wall at 1", twoRoads, []int{1}, []int{4}, []int{0, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProperAncestors(tt.g, tt.treatments, tt.responses)
			assertSet(t, got, tt.want...)
		})
	}
}

func TestSearchConstructors(t *testing.T) {
	// 0 -> 1 -> 3, 2 -> 3, 3 -> 4
	g := mustGraph(t, 5, []graph.Edge{
		{From: 0, To: 1}, {From: 1, To: 3}, {From: 2, To: 3}, {From: 3, To: 4},
	})

	assertSet(t, Parents(g, []int{3}), 1, 2)
	assertSet(t, Parents(g, []int{0}))
	assertSet(t, Parents(g, []int{3, 4}), 1, 2, 3)
	assertSet(t, Ancestors(g, []int{3}), 0, 1, 2, 3)
	assertSet(t, Descendants(g, []int{1}), 1, 3, 4)
	assertSet(t, Descendants(g, []int{4}), 4)
}

func TestOptimalSet(t *testing.T) {
	// 0 -> 1 --> 2 ---> 3 <----7
	//      |     |      |
	//      v     v      v
	//      4 <-- 5 <--- 6
	dag1 := mustGraph(t, 8, []graph.Edge{
		{From: 0, To: 1},
		{From: 1, To: 2}, {From: 1, To: 4},
		{From: 2, To: 3}, {From: 2, To: 5},
		{From: 3, To: 6},
		{From: 5, To: 4},
		{From: 6, To: 5},
		{From: 7, To: 3},
	})

	//      _-> 1 -_
	//     /        \
	//    /          \
	//   /            v
	// 0 <- 4 -> 5 -> 2 -> 3
	//   \                ^
	//    \              /
	//     v            /
	//      6 ------> 7
	dag2 := mustGraph(t, 8, []graph.Edge{
		{From: 0, To: 1}, {From: 0, To: 6},
		{From: 1, To: 2},
		{From: 2, To: 3},
		{From: 4, To: 0}, {From: 4, To: 5},
		{From: 5, To: 2},
		{From: 6, To: 7},
		{From: 7, To: 3},
	})

	tests := []struct {
		name       string
		g          *graph.Graph
		treatments []int
		effect     int
		want       []int
	}{
		{"dag1 t=1 y=5", dag1, []int{1}, 5, []int{7}},
		{"dag1 t=0,2 y=4", dag1, []int{0, 2}, 4, []int{7}},
		{"dag1 t=0,2 y=6", dag1, []int{0, 2}, 6, []int{7}},
		{"dag1 t=1 y=6", dag1, []int{1}, 6, []int{7}},
		{"dag1 t=2 y=5", dag1, []int{2}, 5, []int{7}},
		{"dag1 t=2 y=6", dag1, []int{2}, 6, []int{7}},
		{"dag1 t=7 y=5", dag1, []int{7}, 5, []int{2}},
		{"dag2 t=0 y=3", dag2, []int{0}, 3, []int{5}},
		{"dag2 t=5 y=3", dag2, []int{5}, 3, []int{1, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tDesc := Descendants(tt.g, tt.treatments)
			got := OptimalSet(tt.g, tt.treatments, tt.effect, tDesc)
			assertSet(t, got, tt.want...)
		})
	}
}

func TestValid(t *testing.T) {
	confounder := mustGraph(t, 3, []graph.Edge{{From: 2, To: 0}, {From: 2, To: 1}})
	chain := mustGraph(t, 3, []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}})
	collider := mustGraph(t, 3, []graph.Edge{{From: 0, To: 2}, {From: 1, To: 2}})

	tests := []struct {
		name string
		g    *graph.Graph
		t, y int
		z    []int
		want bool
	}{
		{"confounder unadjusted", confounder, 0, 1, nil, false},
		{"confounder adjusted", confounder, 0, 1, []int{2}, true},
		{"chain empty set", chain, 0, 2, nil, true},
		{"chain blocks mediator", chain, 0, 2, []int{1}, false},
		{"collider untouched", collider, 0, 1, nil, true},
		{"collider opened", collider, 0, 1, []int{2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Valid(tt.g, tt.t, tt.y, toSet(3, tt.z...))
			if err != nil {
				t.Fatalf("Valid() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Valid(%d, %d, %v) = %v, want %v", tt.t, tt.y, tt.z, got, tt.want)
			}
		})
	}
}

func TestValidErrors(t *testing.T) {
	g := mustGraph(t, 3, []graph.Edge{{From: 0, To: 1}})

	if _, err := Valid(g, 1, 1, bitset.New(3)); !errors.Is(err, errors.ErrCodeInvalidPair) {
		t.Errorf("same node pair error = %v, want INVALID_PAIR", err)
	}
	if _, err := Valid(g, 0, 1, toSet(3, 1)); !errors.Is(err, errors.ErrCodeInvalidPair) {
		t.Errorf("effect in set error = %v, want INVALID_PAIR", err)
	}
	if _, err := Valid(g, 0, 5, bitset.New(3)); !errors.Is(err, errors.ErrCodeInvalidNode) {
		t.Errorf("out of range error = %v, want INVALID_NODE", err)
	}
}

func TestEvaluateDescendants(t *testing.T) {
	// Evaluate's descendant set must agree with the rule-table search
	// whatever the conditioning set.
	g := graph.Random(24, 0.3, 11)
	re := graph.NewReach(g)
	for tr := 0; tr < g.NodeCount(); tr++ {
		want := re.Descendants(tr).Clone()
		want.Set(uint(tr))
		z := AncestorSet(g, tr)
		desc, _ := Evaluate(g, tr, z)
		if !desc.Equal(want) {
			t.Fatalf("treatment %d: desc = %v, want %v", tr, setMembers(desc), setMembers(want))
		}
	}
}

func TestForPair(t *testing.T) {
	// 2 -> 0 -> 1, 2 -> 1
	g := mustGraph(t, 3, []graph.Edge{
		{From: 2, To: 0}, {From: 0, To: 1}, {From: 2, To: 1},
	})

	tests := []struct {
		name   string
		policy Policy
		want   []int
	}{
		{"parent", PolicyParent, []int{2}},
		{"ancestor", PolicyAncestor, []int{2}},
		{"optimal", PolicyOptimal, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ForPair(g, tt.policy, 0, 1)
			if err != nil {
				t.Fatalf("ForPair() error = %v", err)
			}
			assertSet(t, set, tt.want...)
			ok, err := Valid(g, 0, 1, set)
			if err != nil {
				t.Fatalf("Valid() error = %v", err)
			}
			if !ok {
				t.Errorf("policy %s produced an invalid set %v", tt.policy, setMembers(set))
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{PolicyParent, PolicyAncestor, PolicyOptimal} {
		got, err := ParsePolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePolicy("backdoor"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParsePolicy(backdoor) error = %v, want INVALID_FORMAT", err)
	}
}
