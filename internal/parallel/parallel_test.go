package parallel

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countRange counts indices visited by ForRange.
func countRange(n, cost int, cfg Config) int64 {
	var counter int64
	ForRange(n, cost, func(start, end int) {
		atomic.AddInt64(&counter, int64(end-start))
	}, cfg)
	return counter
}

func TestForRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 8

	assert.Equal(t, int64(1000), countRange(1000, 1, cfg))
}

func TestForRange_Disabled(t *testing.T) {
	assert.Equal(t, int64(100), countRange(100, 1, Config{Enabled: false}))
}

func TestForRange_HugeMinChunk(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: math.MaxInt}

	for _, cost := range []int{1, 3, math.MaxInt} {
		var calls int64
		ForRange(100, cost, func(start, end int) {
			atomic.AddInt64(&calls, 1)
			assert.Equal(t, 0, start)
			assert.Equal(t, 100, end)
		}, cfg)
		assert.Equal(t, int64(1), calls, "cost=%d", cost)
	}
}

func TestForRange_HugeWorkerCount(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: math.MaxInt, MinChunkSize: 1}
	assert.Equal(t, int64(1000), countRange(1000, 1, cfg))
}

func TestForRange_SmallChunk(t *testing.T) {
	// Small work units fall back to a single call.
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = 4

	var calls int64
	ForRange(cfg.MinChunkSize-1, 1, func(_, _ int) {
		atomic.AddInt64(&calls, 1)
	}, cfg)

	assert.Equal(t, int64(1), calls)
}

func TestForRange_CoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 10}

	for _, n := range []int{0, 1, 9, 10, 11, 29, 30, 31, 1000} {
		seen := make([]int32, n)
		ForRange(n, 1, func(start, end int) {
			assert.LessOrEqual(t, start, end)
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		}, cfg)

		for i, c := range seen {
			assert.Equal(t, int32(1), c, "n=%d index %d", n, i)
		}
	}
}

func TestForRange_CostScalesGrain(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 100}

	// 50 rows of 10 units: each chunk needs at least 10 rows, so at most 5 chunks.
	var mu sync.Mutex
	var sizes []int
	ForRange(50, 10, func(start, end int) {
		mu.Lock()
		sizes = append(sizes, end-start)
		mu.Unlock()
	}, cfg)

	require.NotEmpty(t, sizes)
	assert.LessOrEqual(t, len(sizes), 5)
	total := 0
	for _, s := range sizes {
		total += s
	}
	assert.Equal(t, 50, total)
}

func TestSequential(t *testing.T) {
	cfg := Sequential()

	var calls int
	ForRange(1<<20, 1, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 1<<20, end)
	}, cfg)

	assert.Equal(t, 1, calls)
}

func BenchmarkForRange(b *testing.B) {
	cfg := DefaultConfig()
	n := 100000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			countRange(n, 1, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			countRange(n, 1, cfgSeq)
		}
	})
}
