package kernel

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/flatmat/internal/parallel"
)

// AddMatrix returns a new buffer r with r[i] = a[i] + b[i].
// Operands are paired by flat index and must have equal length.
func (k *CPUKernel) AddMatrix(a, b []float64) ([]float64, error) {
	if err := checkLengths("add_matrix", a, b); err != nil {
		return nil, err
	}
	dst := make([]float64, len(a))
	parallel.ForRange(len(dst), 1, func(s, e int) {
		floats.AddTo(dst[s:e], a[s:e], b[s:e])
	}, k.par)
	return dst, nil
}

// SubtractMatrix returns a new buffer r with r[i] = a[i] - b[i].
func (k *CPUKernel) SubtractMatrix(a, b []float64) ([]float64, error) {
	if err := checkLengths("subtract_matrix", a, b); err != nil {
		return nil, err
	}
	dst := make([]float64, len(a))
	parallel.ForRange(len(dst), 1, func(s, e int) {
		floats.SubTo(dst[s:e], a[s:e], b[s:e])
	}, k.par)
	return dst, nil
}

// ElementwiseMultiply returns the Hadamard product r[i] = a[i] * b[i].
// It is not an inner product; see Multiply for the matrix product.
func (k *CPUKernel) ElementwiseMultiply(a, b []float64) ([]float64, error) {
	if err := checkLengths("elementwise_multiply", a, b); err != nil {
		return nil, err
	}
	dst := make([]float64, len(a))
	parallel.ForRange(len(dst), 1, func(s, e int) {
		floats.MulTo(dst[s:e], a[s:e], b[s:e])
	}, k.par)
	return dst, nil
}

// DotMatrix is the host-facing name of ElementwiseMultiply.
//
// Deprecated: the name suggests an inner product. Use ElementwiseMultiply.
func (k *CPUKernel) DotMatrix(a, b []float64) ([]float64, error) {
	return k.ElementwiseMultiply(a, b)
}
