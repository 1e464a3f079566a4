package metrics

import "github.com/causalbench/adjid/pkg/graph"

// SHD computes the structural Hamming distance between two DAGs: the number
// of unordered node pairs whose connection differs, where a pair connected
// in both graphs but with opposite orientation counts one mistake. The
// distance is normalized by the n*(n-1)/2 unordered pairs.
func SHD(a, b *graph.Graph) (Result, error) {
	n, err := checkSizes(a, b)
	if err != nil {
		return Result{}, err
	}
	if n < 2 {
		return Result{}, nil
	}

	mistakes := parallelSum(n, func(v int) int {
		// Only neighbors below v, so each unordered pair is counted once.
		parents := symDiffBelow(a.Parents(v), b.Parents(v), v)
		children := symDiffBelow(a.Children(v), b.Children(v), v)
		return unionLen(parents, children)
	})
	return newResult(mistakes, n*(n-1)/2), nil
}

// symDiffBelow merges two ascending neighbor lists, keeping entries below
// limit that occur in exactly one of them.
func symDiffBelow(a, b []int, limit int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && a[i] < limit && j < len(b) && b[j] < limit {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	for ; i < len(a) && a[i] < limit; i++ {
		out = append(out, a[i])
	}
	for ; j < len(b) && b[j] < limit; j++ {
		out = append(out, b[j])
	}
	return out
}

// unionLen returns the size of the union of two ascending lists.
func unionLen(a, b []int) int {
	count := 0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
		count++
	}
	return count + (len(a) - i) + (len(b) - j)
}
