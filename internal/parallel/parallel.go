// Package parallel fans row-independent kernel loops out across worker
// goroutines. The CPU backend uses it for matrix-product rows; callers see
// strictly sequential semantics apart from execution order.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how For splits a loop.
type Config struct {
	Enabled    bool
	NumWorkers int
	// MinSpan is the smallest n worth fanning out; shorter loops run
	// sequentially to keep goroutine overhead off the tiny-batch path.
	MinSpan int
}

// DefaultConfig enables fan-out on multi-core hosts.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinSpan:    64,
	}
}

// For runs f(i) for every i in [0, n) exactly once. When fan-out kicks in,
// f must be safe to call concurrently for distinct i; disjoint index ranges
// go to different workers.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinSpan {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	if chunk < cfg.MinSpan {
		chunk = cfg.MinSpan
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
