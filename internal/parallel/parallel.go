// Package parallel splits index ranges across goroutines for the flatmat kernels.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MaxChunkSize bounds Config.MinChunkSize values read from configuration.
const MaxChunkSize = 1 << 30

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of goroutines running at once.
	MinChunkSize int  // Minimum units of work per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096, // Below this, goroutine startup dominates a float64 loop.
	}
}

// Sequential returns a config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{NumWorkers: 1}
}

// ForRange partitions [0, n) into contiguous half-open ranges and calls f once
// per range. cost is the number of work units per index (for example the
// number of multiply-adds per output row) and is used to size chunks so that
// each goroutine receives at least cfg.MinChunkSize units.
//
// Ranges never overlap and together cover [0, n) exactly once. ForRange
// returns after every call to f has returned.
func ForRange(n, cost int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	cost = max(cost, 1)

	// Minimum number of indices per chunk, rounded up.
	grain := cfg.MinChunkSize / cost
	if cfg.MinChunkSize%cost != 0 {
		grain++
	}
	grain = max(grain, 1)

	if !cfg.Enabled || cfg.NumWorkers <= 1 || n <= grain {
		// Sequential fallback.
		f(0, n)
		return
	}

	chunkSize := n / cfg.NumWorkers
	if n%cfg.NumWorkers != 0 {
		chunkSize++
	}
	chunkSize = max(chunkSize, grain)

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			f(start, end)
			return nil
		})
	}
	_ = g.Wait() // Workers never fail.
}
