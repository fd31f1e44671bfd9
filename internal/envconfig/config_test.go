package envconfig

import (
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/flatmat/internal/parallel"
)

func TestVar(t *testing.T) {
	t.Setenv("FLATMAT_TEST_VAR", `  "quoted"  `)
	assert.Equal(t, "quoted", Var("FLATMAT_TEST_VAR"))
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
		"-1":    slog.LevelWarn,
	}

	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("FLATMAT_DEBUG", value)
			assert.Equal(t, want, LogLevel())
		})
	}
}

func TestParallelConfig_Defaults(t *testing.T) {
	t.Setenv("FLATMAT_PARALLEL", "")
	t.Setenv("FLATMAT_NUM_THREADS", "")
	t.Setenv("FLATMAT_MIN_CHUNK", "")

	cfg := ParallelConfig()
	assert.Equal(t, runtime.NumCPU(), cfg.NumWorkers)
	assert.Equal(t, parallel.DefaultConfig().MinChunkSize, cfg.MinChunkSize)
	assert.Equal(t, runtime.NumCPU() > 1, cfg.Enabled)
}

func TestParallelConfig_Overrides(t *testing.T) {
	t.Setenv("FLATMAT_PARALLEL", "true")
	t.Setenv("FLATMAT_NUM_THREADS", "3")
	t.Setenv("FLATMAT_MIN_CHUNK", "128")

	assert.Equal(t, parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 128}, ParallelConfig())
}

func TestParallelConfig_Disabled(t *testing.T) {
	t.Setenv("FLATMAT_PARALLEL", "false")
	t.Setenv("FLATMAT_NUM_THREADS", "8")

	assert.False(t, ParallelConfig().Enabled)
}

func TestParallelConfig_SingleThread(t *testing.T) {
	t.Setenv("FLATMAT_PARALLEL", "1")
	t.Setenv("FLATMAT_NUM_THREADS", "0")

	cfg := ParallelConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.NumWorkers)
}

func TestUint_Invalid(t *testing.T) {
	t.Setenv("FLATMAT_NUM_THREADS", "many")
	assert.Equal(t, uint(runtime.NumCPU()), NumThreads())
}

func TestParallelConfig_ClampsMinChunk(t *testing.T) {
	t.Setenv("FLATMAT_NUM_THREADS", "4")

	t.Setenv("FLATMAT_MIN_CHUNK", "18446744073709551615")
	assert.Equal(t, parallel.MaxChunkSize, ParallelConfig().MinChunkSize)

	t.Setenv("FLATMAT_MIN_CHUNK", "0")
	assert.Equal(t, 1, ParallelConfig().MinChunkSize)
}
