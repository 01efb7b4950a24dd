package formulas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Clamp limits a value to the [min, max] range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampInt limits an integer value to the [min, max] range
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundMoney rounds a float amount to the nearest whole currency unit.
// All monetary values in the engine are int64 in whole thousands, rounded
// at every step so repeated drift stays reproducible across runs.
func RoundMoney(value float64) int64 {
	return int64(math.Round(value))
}

// Lerp linearly interpolates between a and b by t in [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InterpolateCurve evaluates a piecewise-linear curve defined by ascending
// x breakpoints. Values below the first point clamp to the first y, values
// above the last point clamp to the last y.
func InterpolateCurve(xs, ys []float64, x float64) float64 {
	if len(xs) == 0 || len(xs) != len(ys) {
		return 0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[len(xs)-1] {
		return ys[len(ys)-1]
	}
	for i := 1; i < len(xs); i++ {
		if x <= xs[i] {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return Lerp(ys[i-1], ys[i], t)
		}
	}
	return ys[len(ys)-1]
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Median calculates the median of a slice without mutating the input
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
