package kernel

// Sum computes the total sum of all elements, accumulating left to right from 0.
// An empty buffer sums to 0.
func (k *CPUKernel) Sum(a []float64) float64 {
	var sum float64
	for _, v := range a {
		sum += v
	}
	return sum
}

// Argmax returns the index of the largest element of a under the IEEE-754
// totalOrder predicate (see TotalCompare). When several elements tie for the
// maximum, the lowest index wins. ok is false if and only if a is empty.
//
// Example:
//
//	idx, ok := k.Argmax([]float64{3, 1, 3}) // 0, true
func (k *CPUKernel) Argmax(a []float64) (idx int, ok bool) {
	if len(a) == 0 {
		return 0, false
	}

	best := totalOrderKey(a[0])
	for i := 1; i < len(a); i++ {
		// Replace only on strict improvement: first occurrence wins ties.
		if key := totalOrderKey(a[i]); key > best {
			idx, best = i, key
		}
	}
	return idx, true
}
