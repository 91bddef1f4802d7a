// Package stats provides the small numeric helpers shared by the analysis
// stages: smoothing, medians and means over per-frame series.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MovingAverage smooths a series with a centered moving average of the given
// window. Windows are truncated at the edges so the output has the same
// length as the input. A window below 2 returns a copy of the input.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window < 2 {
		copy(out, values)
		return out
	}
	half := window / 2
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(values)-1 {
			hi = len(values) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Median returns the middle value of the series (average of the two middle
// values for even lengths), or 0 for an empty series. The input is not
// modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// ArgMin returns the index of the smallest value in values[lo:hi], searching
// the half-open range [lo, hi). Returns lo when the range is empty or
// degenerate.
func ArgMin(values []float64, lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi > len(values) {
		hi = len(values)
	}
	best := lo
	for i := lo + 1; i < hi; i++ {
		if values[i] < values[best] {
			best = i
		}
	}
	return best
}

// ArgMax is the counterpart of ArgMin for the largest value.
func ArgMax(values []float64, lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi > len(values) {
		hi = len(values)
	}
	best := lo
	for i := lo + 1; i < hi; i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
