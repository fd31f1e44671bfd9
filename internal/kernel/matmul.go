package kernel

import (
	"github.com/born-ml/flatmat/internal/parallel"
)

// Multiply performs matrix multiplication of a (rows×n) by b (n×m) and returns
// the rows×m product in row-major order.
//
//	result[i*m+j] = sum_{k=0}^{n-1} a[i*n+k] * b[k*m+j]
//
// Each output element is accumulated in increasing k starting from 0, with every
// product rounded before it is added, so results are bit-reproducible across
// platforms and across sequential and parallel execution.
func (k *CPUKernel) Multiply(a, b []float64, rows, m, n int) ([]float64, error) {
	if err := checkShape("multiply", "a", a, rows, n); err != nil {
		return nil, err
	}
	if err := checkShape("multiply", "b", b, n, m); err != nil {
		return nil, err
	}
	size, ok := elements(rows, m)
	if !ok {
		return nil, &ShapeError{Op: "multiply", Operand: "result", Rows: rows, Cols: m}
	}

	// make zero-fills; every slot is then written exactly once.
	c := make([]float64, size)
	if m == 0 {
		return c, nil
	}
	parallel.ForRange(rows, m*max(n, 1), func(start, end int) {
		matmulFloat64(c, a, b, start, end, m, n)
	}, k.par)
	return c, nil
}

// matmulFloat64 computes output rows [start, end) with the naive O(n³) loop.
func matmulFloat64(c, a, b []float64, start, end, m, n int) {
	for i := start; i < end; i++ {
		row := a[i*n : i*n+n]
		for j := 0; j < m; j++ {
			sum := float64(0)
			for kIdx, x := range row {
				// The conversion forces rounding of the product and stops the
				// compiler from fusing it into an FMA.
				sum += float64(x * b[kIdx*m+j])
			}
			c[i*m+j] = sum
		}
	}
}
