package kernel

import (
	"github.com/born-ml/flatmat/internal/parallel"
)

// Transpose returns the columns×rows transpose of the rows×columns matrix a:
//
//	result[j*rows+i] = a[i*columns+j]
//
// The output is a permutation of the input; its length equals len(a).
func (k *CPUKernel) Transpose(a []float64, rows, columns int) ([]float64, error) {
	if err := checkShape("transpose", "a", a, rows, columns); err != nil {
		return nil, err
	}

	dst := make([]float64, len(a))
	if columns == 0 {
		return dst, nil
	}
	parallel.ForRange(rows, columns, func(start, end int) {
		transposeRows(dst, a, start, end, rows, columns)
	}, k.par)
	return dst, nil
}

// transposeRows scatters source rows [start, end) into their destination columns.
// Distinct source rows write distinct destination slots.
func transposeRows(dst, src []float64, start, end, rows, columns int) {
	for i := start; i < end; i++ {
		for j, v := range src[i*columns : (i+1)*columns] {
			dst[j*rows+i] = v
		}
	}
}
