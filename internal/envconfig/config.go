// Package envconfig reads flatmat settings from FLATMAT_* environment variables.
//
// Getters read the environment on every call, so tests and long-running hosts
// observe changes without a reload step.
package envconfig

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/born-ml/flatmat/internal/parallel"
)

// Var returns an environment variable stripped of spaces and surrounding quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel returns the log level.
// Configurable via FLATMAT_DEBUG: 0/false = INFO (default), 1/true = DEBUG,
// any other integer n = slog.Level(-4n).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("FLATMAT_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

var (
	// Parallel enables splitting large operations across goroutines.
	// Configurable via FLATMAT_PARALLEL, default true.
	Parallel = BoolWithDefault("FLATMAT_PARALLEL")
	// NumThreads bounds the goroutines used by one kernel call.
	// Configurable via FLATMAT_NUM_THREADS, default runtime.NumCPU().
	NumThreads = Uint("FLATMAT_NUM_THREADS", uint(runtime.NumCPU()))
	// MinChunk is the minimum number of work units handed to one goroutine.
	// Configurable via FLATMAT_MIN_CHUNK, capped at parallel.MaxChunkSize.
	MinChunk = Uint("FLATMAT_MIN_CHUNK", uint(parallel.DefaultConfig().MinChunkSize))
)

// ParallelConfig assembles the kernel parallel configuration from the environment.
func ParallelConfig() parallel.Config {
	workers := max(int(NumThreads()), 1)
	return parallel.Config{
		Enabled:      Parallel(true) && workers > 1,
		NumWorkers:   workers,
		MinChunkSize: int(min(max(MinChunk(), 1), parallel.MaxChunkSize)),
	}
}

// BoolWithDefault returns a getter that parses key as a bool, falling back to
// defaultValue when unset. Unparseable non-empty values count as true.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Uint returns a getter that parses key as an unsigned integer.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every configuration variable with its effective value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"FLATMAT_DEBUG":       {"FLATMAT_DEBUG", LogLevel(), "Show additional debug information (e.g. FLATMAT_DEBUG=1)"},
		"FLATMAT_PARALLEL":    {"FLATMAT_PARALLEL", Parallel(true), "Split large operations across goroutines (default true)"},
		"FLATMAT_NUM_THREADS": {"FLATMAT_NUM_THREADS", NumThreads(), "Maximum goroutines per kernel call (default: number of CPUs)"},
		"FLATMAT_MIN_CHUNK":   {"FLATMAT_MIN_CHUNK", MinChunk(), "Minimum work units per goroutine"},
	}
}
