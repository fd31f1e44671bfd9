// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel provides dense float64 matrix and vector kernels over flat,
// row-major buffers.
//
// # Overview
//
// A matrix with R rows and C columns is a []float64 of length R*C where
// element (i, j) lives at index i*C+j. Every function takes plain buffers and
// shape parameters, returns a newly allocated result, and never modifies its
// arguments. There is no matrix type and no state between calls.
//
// Operations:
//   - AddMatrix, SubtractMatrix, ElementwiseMultiply: positional binary ops
//   - AddScalar, SubtractScalar, MultiplyScalar: ops against a scalar
//   - Multiply: matrix product of a rows×n and an n×m matrix
//   - Transpose: rows×columns to columns×rows
//   - Sum: left-to-right sum of all elements
//   - Argmax: first index of the maximum under IEEE-754 totalOrder
//
// # Basic Usage
//
//	c, err := kernel.Multiply([]float64{1, 2, 3, 4}, []float64{5, 6, 7, 8}, 2, 2, 2)
//	// c == []float64{19, 22, 43, 50}
//
//	t, err := kernel.Transpose([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
//	// t == []float64{1, 4, 2, 5, 3, 6}
//
// # Errors
//
// Elementwise binary operations reject operands of different length with an
// error matching ErrLengthMismatch. Multiply and Transpose reject buffers whose
// length disagrees with the declared shape with an error matching
// ErrShapeMismatch. Both are reported before any work is done. Scalar
// operations, Sum and Argmax cannot fail; NaN and ±Inf propagate per IEEE-754.
//
// # Thread Safety
//
// All functions and CPU values are safe for concurrent use. Large inputs are
// split across goroutines internally; results are bit-identical to sequential
// execution.
package kernel
