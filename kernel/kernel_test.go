// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package kernel_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/flatmat/kernel"
)

// TestKernelInterface verifies that the CPU kernel implements kernel.Kernel.
func TestKernelInterface(_ *testing.T) {
	var _ kernel.Kernel = kernel.New()
	var _ kernel.Kernel = kernel.NewSequential()
}

func TestPackageFunctions(t *testing.T) {
	sum, err := kernel.AddMatrix([]float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, sum)

	diff, err := kernel.SubtractMatrix([]float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -2}, diff)

	prod, err := kernel.ElementwiseMultiply([]float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 8}, prod)

	dot, err := kernel.DotMatrix([]float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, prod, dot)

	assert.Equal(t, []float64{6, 7, 8, 9}, kernel.AddScalar([]float64{1, 2, 3, 4}, 5))
	assert.Equal(t, []float64{0.5, 1.5}, kernel.SubtractScalar([]float64{1, 2}, 0.5))
	assert.Equal(t, []float64{4, 8}, kernel.MultiplyScalar([]float64{1, 2}, 4))
	assert.Equal(t, []float64{4, 8}, kernel.DotScalar([]float64{1, 2}, 4))

	mm, err := kernel.Multiply([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 4}, 2, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 10, 15, 22}, mm)

	tr, err := kernel.Transpose([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 2, 4}, tr)

	assert.Equal(t, 19.0, kernel.Sum([]float64{3, 16}))

	idx, ok := kernel.Argmax([]float64{1, 2, 3, 4})
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	assert.Equal(t, -1, kernel.TotalCompare(-1, 1))
}

func TestPackageErrors(t *testing.T) {
	_, err := kernel.AddMatrix([]float64{1}, nil)
	assert.True(t, errors.Is(err, kernel.ErrLengthMismatch))
	var lerr *kernel.LengthError
	assert.ErrorAs(t, err, &lerr)

	_, err = kernel.Multiply([]float64{1, 2, 3}, []float64{1, 2, 3, 4}, 2, 2, 2)
	assert.True(t, errors.Is(err, kernel.ErrShapeMismatch))
	var serr *kernel.ShapeError
	assert.ErrorAs(t, err, &serr)

	_, err = kernel.Transpose(nil, -1, 2)
	assert.True(t, errors.Is(err, kernel.ErrNegativeDimension))
}

func TestConcurrentCalls(t *testing.T) {
	k := kernel.NewWithConfig(kernel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 4})
	a := make([]float64, 64*64)
	for i := range a {
		a[i] = float64(i % 7)
	}
	want, err := kernel.NewSequential().Multiply(a, a, 64, 64, 64)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := k.Multiply(a, a, 64, 64, 64)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
