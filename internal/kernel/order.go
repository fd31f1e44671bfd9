package kernel

import (
	"cmp"
	"math"
)

// TotalCompare orders float64 values by the IEEE-754 totalOrder predicate:
//
//	-NaN < -Inf < negative finite < -0 < +0 < positive finite < +Inf < +NaN
//
// It returns -1, 0 or +1. Unlike <, every pair of values is comparable, and
// NaNs with different sign or payload are distinct.
func TotalCompare(x, y float64) int {
	return cmp.Compare(totalOrderKey(x), totalOrderKey(y))
}

// totalOrderKey maps x to a signed integer whose natural order is totalOrder.
// Negative values have every bit except the sign flipped so that larger
// magnitudes sort lower.
func totalOrderKey(x float64) int64 {
	bits := int64(math.Float64bits(x))
	bits ^= int64(uint64(bits>>63) >> 1)
	return bits
}
