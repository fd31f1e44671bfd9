package kernel

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/flatmat/internal/parallel"
)

// Scalar operations - element-wise operations with a scalar value.
// These are total: NaN and ±Inf propagate per IEEE-754.

// AddScalar returns a new buffer with s added to each element of a.
func (k *CPUKernel) AddScalar(a []float64, s float64) []float64 {
	dst := make([]float64, len(a))
	parallel.ForRange(len(dst), 1, func(lo, hi int) {
		copy(dst[lo:hi], a[lo:hi])
		floats.AddConst(s, dst[lo:hi])
	}, k.par)
	return dst
}

// SubtractScalar returns a new buffer with s subtracted from each element of a.
func (k *CPUKernel) SubtractScalar(a []float64, s float64) []float64 {
	dst := make([]float64, len(a))
	parallel.ForRange(len(dst), 1, func(lo, hi int) {
		subScalarFloat64(dst[lo:hi], a[lo:hi], s)
	}, k.par)
	return dst
}

// MultiplyScalar returns a new buffer with each element of a multiplied by s.
func (k *CPUKernel) MultiplyScalar(a []float64, s float64) []float64 {
	dst := make([]float64, len(a))
	parallel.ForRange(len(dst), 1, func(lo, hi int) {
		floats.ScaleTo(dst[lo:hi], s, a[lo:hi])
	}, k.par)
	return dst
}

// DotScalar is the host-facing name of MultiplyScalar.
//
// Deprecated: use MultiplyScalar.
func (k *CPUKernel) DotScalar(a []float64, s float64) []float64 {
	return k.MultiplyScalar(a, s)
}

// subScalarFloat64 keeps a[i] - s as a real subtraction; a[i] + (-s) would
// flip the sign bit of a NaN s and change its total-order position.
func subScalarFloat64(dst, a []float64, s float64) {
	for i := range a {
		dst[i] = a[i] - s
	}
}
