// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package kernel

import (
	internalkernel "github.com/born-ml/flatmat/internal/kernel"
	"github.com/born-ml/flatmat/internal/parallel"
)

// Kernel defines the flat-buffer function set.
//
// Implementations:
//   - CPU: pure Go, optionally splitting large inputs across goroutines
type Kernel interface {
	// Element-wise binary operations. Operands must have equal length.
	AddMatrix(a, b []float64) ([]float64, error)           // r[i] = a[i] + b[i]
	SubtractMatrix(a, b []float64) ([]float64, error)      // r[i] = a[i] - b[i]
	ElementwiseMultiply(a, b []float64) ([]float64, error) // r[i] = a[i] * b[i]

	// Scalar operations.
	AddScalar(a []float64, s float64) []float64      // r[i] = a[i] + s
	SubtractScalar(a []float64, s float64) []float64 // r[i] = a[i] - s
	MultiplyScalar(a []float64, s float64) []float64 // r[i] = a[i] * s

	// Matrix operations.
	Multiply(a, b []float64, rows, m, n int) ([]float64, error) // (rows×n) @ (n×m)
	Transpose(a []float64, rows, columns int) ([]float64, error)

	// Reductions.
	Sum(a []float64) float64
	Argmax(a []float64) (int, bool)
}

// CPU is the pure Go kernel implementation.
type CPU = internalkernel.CPUKernel

// Config controls how the CPU kernel splits large inputs across goroutines.
type Config = parallel.Config

// Error types reported by the kernel.
type (
	LengthError = internalkernel.LengthError
	ShapeError  = internalkernel.ShapeError
)

// MaxElements is the largest number of elements a shape may describe.
const MaxElements = internalkernel.MaxElements

// Sentinel errors; match with errors.Is.
var (
	ErrLengthMismatch    = internalkernel.ErrLengthMismatch
	ErrShapeMismatch     = internalkernel.ErrShapeMismatch
	ErrNegativeDimension = internalkernel.ErrNegativeDimension
)

// Compile-time check that CPU implements Kernel.
var _ Kernel = (*CPU)(nil)

// defaultKernel backs the package-level functions. It is never mutated.
var defaultKernel = internalkernel.New()

// New creates a CPU kernel with the default parallel configuration.
func New() *CPU {
	return internalkernel.New()
}

// NewSequential creates a CPU kernel that runs every call on the calling goroutine.
func NewSequential() *CPU {
	return internalkernel.NewSequential()
}

// NewWithConfig creates a CPU kernel with an explicit parallel configuration.
func NewWithConfig(cfg Config) *CPU {
	return internalkernel.NewWithConfig(cfg)
}

// DefaultConfig returns the parallel configuration used by New.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// AddMatrix returns a[i] + b[i] for equal-length a and b.
func AddMatrix(a, b []float64) ([]float64, error) {
	return defaultKernel.AddMatrix(a, b)
}

// SubtractMatrix returns a[i] - b[i] for equal-length a and b.
func SubtractMatrix(a, b []float64) ([]float64, error) {
	return defaultKernel.SubtractMatrix(a, b)
}

// ElementwiseMultiply returns the Hadamard product a[i] * b[i].
func ElementwiseMultiply(a, b []float64) ([]float64, error) {
	return defaultKernel.ElementwiseMultiply(a, b)
}

// DotMatrix is the host-facing name of ElementwiseMultiply.
//
// Deprecated: the name suggests an inner product. Use ElementwiseMultiply.
func DotMatrix(a, b []float64) ([]float64, error) {
	return defaultKernel.ElementwiseMultiply(a, b)
}

// AddScalar returns a[i] + s.
func AddScalar(a []float64, s float64) []float64 {
	return defaultKernel.AddScalar(a, s)
}

// SubtractScalar returns a[i] - s.
func SubtractScalar(a []float64, s float64) []float64 {
	return defaultKernel.SubtractScalar(a, s)
}

// MultiplyScalar returns a[i] * s.
func MultiplyScalar(a []float64, s float64) []float64 {
	return defaultKernel.MultiplyScalar(a, s)
}

// DotScalar is the host-facing name of MultiplyScalar.
//
// Deprecated: use MultiplyScalar.
func DotScalar(a []float64, s float64) []float64 {
	return defaultKernel.MultiplyScalar(a, s)
}

// Multiply returns the rows×m product of a (rows×n) and b (n×m).
func Multiply(a, b []float64, rows, m, n int) ([]float64, error) {
	return defaultKernel.Multiply(a, b, rows, m, n)
}

// Transpose returns the columns×rows transpose of the rows×columns matrix a.
func Transpose(a []float64, rows, columns int) ([]float64, error) {
	return defaultKernel.Transpose(a, rows, columns)
}

// Sum returns the left-to-right sum of a; 0 for an empty buffer.
func Sum(a []float64) float64 {
	return defaultKernel.Sum(a)
}

// Argmax returns the first index of the maximum of a under IEEE-754 totalOrder.
// ok is false if and only if a is empty.
func Argmax(a []float64) (idx int, ok bool) {
	return defaultKernel.Argmax(a)
}

// TotalCompare compares x and y under IEEE-754 totalOrder, returning -1, 0 or +1.
func TotalCompare(x, y float64) int {
	return internalkernel.TotalCompare(x, y)
}
