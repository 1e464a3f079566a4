package metrics

import "fmt"

// Result is the outcome of one distance computation. Distance is Mistakes
// normalized by Pairs, the number of node pairs compared; a Result with
// zero Pairs has Distance 0 by convention.
type Result struct {
	Distance float64 `json:"distance" toml:"distance"`
	Mistakes int     `json:"mistakes" toml:"mistakes"`
	Pairs    int     `json:"pairs" toml:"pairs"`
}

func newResult(mistakes, pairs int) Result {
	r := Result{Mistakes: mistakes, Pairs: pairs}
	if pairs > 0 {
		r.Distance = float64(mistakes) / float64(pairs)
	}
	return r
}

func (r Result) String() string {
	return fmt.Sprintf("%.6f (%d/%d)", r.Distance, r.Mistakes, r.Pairs)
}
