// Package kernel implements the flatmat CPU kernels over flat row-major float64 buffers.
//
// Every operation reads its inputs, allocates a fresh result and never writes to
// caller memory. A CPUKernel carries only an immutable parallel.Config, so a
// single value is safe for concurrent use.
package kernel

import (
	"github.com/born-ml/flatmat/internal/parallel"
)

// CPUKernel implements the kernel function set on CPU.
type CPUKernel struct {
	par parallel.Config
}

// New creates a CPU kernel with the default parallel configuration.
func New() *CPUKernel {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewSequential creates a CPU kernel that never leaves the calling goroutine.
func NewSequential() *CPUKernel {
	return NewWithConfig(parallel.Sequential())
}

// NewWithConfig creates a CPU kernel using cfg to split large operations.
func NewWithConfig(cfg parallel.Config) *CPUKernel {
	if cfg.NumWorkers < 1 {
		cfg.NumWorkers = 1
	}
	return &CPUKernel{par: cfg}
}

// Name returns the kernel name.
func (k *CPUKernel) Name() string {
	return "CPU"
}

// Parallel returns the parallel configuration the kernel was built with.
func (k *CPUKernel) Parallel() parallel.Config {
	return k.par
}
