package bench

import (
	"math"
	"slices"
	"time"
)

// Median returns the median round duration.
func (r Result) Median() time.Duration {
	n := len(r.Durations)
	if n == 0 {
		return 0
	}

	sorted := slices.Clone(r.Durations)
	slices.Sort(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// StdDev returns the population standard deviation of round durations.
func (r Result) StdDev() time.Duration {
	n := len(r.Durations)
	if n == 0 {
		return 0
	}

	mean := float64(r.Total) / float64(n)

	var sumSq float64

	for _, d := range r.Durations {
		diff := float64(d) - mean
		sumSq += diff * diff
	}

	return time.Duration(math.Sqrt(sumSq / float64(n)))
}
