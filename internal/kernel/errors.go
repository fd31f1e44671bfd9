package kernel

import (
	"errors"
	"fmt"
	"math"
)

// MaxElements is the largest number of elements a shape may describe.
const MaxElements = math.MaxInt32

// Common errors.
var (
	ErrLengthMismatch    = errors.New("kernel: operand lengths differ")
	ErrShapeMismatch     = errors.New("kernel: buffer length does not match shape")
	ErrNegativeDimension = errors.New("kernel: negative dimension")
)

// LengthError reports elementwise operands of different lengths.
type LengthError struct {
	Op    string // Operation name (e.g., "add_matrix")
	Left  int    // len(a)
	Right int    // len(b)
}

// Error implements the error interface.
func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: operand lengths differ: len(a)=%d, len(b)=%d", e.Op, e.Left, e.Right)
}

// Unwrap returns ErrLengthMismatch.
func (e *LengthError) Unwrap() error {
	return ErrLengthMismatch
}

// ShapeError reports a buffer whose length is inconsistent with its declared shape.
type ShapeError struct {
	Op      string // Operation name (e.g., "multiply")
	Operand string // Operand name ("a" or "b")
	Rows    int    // Declared rows
	Cols    int    // Declared columns
	Len     int    // Actual buffer length
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Rows < 0 || e.Cols < 0 {
		return fmt.Sprintf("%s: operand %s: negative dimension %dx%d", e.Op, e.Operand, e.Rows, e.Cols)
	}
	want, ok := elements(e.Rows, e.Cols)
	if !ok {
		return fmt.Sprintf("%s: operand %s: shape %dx%d exceeds %d elements", e.Op, e.Operand, e.Rows, e.Cols, MaxElements)
	}
	return fmt.Sprintf("%s: operand %s: length %d does not match shape %dx%d (%d elements)",
		e.Op, e.Operand, e.Len, e.Rows, e.Cols, want)
}

// Unwrap returns ErrShapeMismatch, plus ErrNegativeDimension for negative shapes.
func (e *ShapeError) Unwrap() []error {
	if e.Rows < 0 || e.Cols < 0 {
		return []error{ErrShapeMismatch, ErrNegativeDimension}
	}
	return []error{ErrShapeMismatch}
}

// elements returns rows*cols, or false if either is negative or the product
// exceeds MaxElements.
func elements(rows, cols int) (int, bool) {
	if rows < 0 || cols < 0 {
		return 0, false
	}
	if cols != 0 && rows > MaxElements/cols {
		return 0, false
	}
	return rows * cols, true
}

// checkShape validates that buf holds exactly a rows×cols matrix.
func checkShape(op, operand string, buf []float64, rows, cols int) error {
	if want, ok := elements(rows, cols); !ok || want != len(buf) {
		return &ShapeError{Op: op, Operand: operand, Rows: rows, Cols: cols, Len: len(buf)}
	}
	return nil
}

// checkLengths validates that elementwise operands pair one-to-one.
func checkLengths(op string, a, b []float64) error {
	if len(a) != len(b) {
		return &LengthError{Op: op, Left: len(a), Right: len(b)}
	}
	return nil
}
