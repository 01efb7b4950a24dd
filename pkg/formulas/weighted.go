package formulas

import "gonum.org/v1/gonum/floats"

// NormalizeWeights scales a weight vector in place so it sums to 1.0.
// Returns false when the sum is zero (caller must apply its fallback).
func NormalizeWeights(weights []float64) bool {
	sum := floats.Sum(weights)
	if sum <= 0 {
		return false
	}
	floats.Scale(1/sum, weights)
	return true
}

// WeightedIndex picks an index from a normalized weight vector using a single
// roll in [0, 1) by cumulative subtraction. The last index with nonzero
// weight absorbs any floating point remainder.
func WeightedIndex(weights []float64, roll float64) int {
	remaining := roll
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if remaining < w {
			return i
		}
		remaining -= w
		last = i
	}
	return last
}
