package errors

// ValidateNode checks that a node index lies inside [0, n).
// Used by graph construction and by every public entry point that accepts
// node indices, so a bad index fails the whole call before any computation.
func ValidateNode(v, n int) error {
	if v < 0 || v >= n {
		return New(ErrCodeInvalidNode, "node index %d out of range [0,%d)", v, n)
	}
	return nil
}

// ValidatePair checks that (treatment, effect) is a well-formed ordered pair
// over a graph with n nodes: both indices in range and distinct.
func ValidatePair(treatment, effect, n int) error {
	if err := ValidateNode(treatment, n); err != nil {
		return err
	}
	if err := ValidateNode(effect, n); err != nil {
		return err
	}
	if treatment == effect {
		return New(ErrCodeInvalidPair, "treatment and effect must differ, both are %d", treatment)
	}
	return nil
}

// ValidateSelection checks a treatment or effect selection: every index in
// range and no duplicates. An empty selection is valid (it is the defined
// zero-distance convention, not an error).
func ValidateSelection(nodes []int, n int) error {
	seen := make(map[int]struct{}, len(nodes))
	for _, v := range nodes {
		if err := ValidateNode(v, n); err != nil {
			return err
		}
		if _, dup := seen[v]; dup {
			return New(ErrCodeInvalidSelection, "duplicate node index %d in selection", v)
		}
		seen[v] = struct{}{}
	}
	return nil
}
