package metrics

import (
	"runtime"
	"sync"
)

// parallelSum evaluates f(0) + ... + f(n-1) across a bounded set of
// workers. Each index writes its own slot of the tally, so f needs no
// locking as long as it only reads shared state.
func parallelSum(n int, f func(i int) int) int {
	if n == 0 {
		return 0
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	counts := make([]int, n)
	if workers == 1 {
		for i := 0; i < n; i++ {
			counts[i] = f(i)
		}
	} else {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(start int) {
				defer wg.Done()
				for i := start; i < n; i += workers {
					counts[i] = f(i)
				}
			}(w)
		}
		wg.Wait()
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}
