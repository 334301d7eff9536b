// scan/metrics.go
// Package: scan
package scan

import (
	"math"
	"slices"

	"github.com/mwiater/cosmoview/internal/stats"
)

// sample is the sorted set of values one metric takes across a scan.
type sample []float64

func newSample(values []float64) sample {
	s := slices.Clone(values)
	slices.Sort(s)
	return s
}

// quantile interpolates linearly between the closest ranks. q is clamped
// to [0, 1]; an empty sample yields 0.
func (s sample) quantile(q float64) float64 {
	if len(s) == 0 {
		return 0
	}
	pos := min(max(q, 0), 1) * float64(len(s)-1)
	i := int(pos)
	if i+1 >= len(s) {
		return s[len(s)-1]
	}
	return s[i] + (s[i+1]-s[i])*(pos-float64(i))
}

// spread returns the mean and the population standard deviation.
func (s sample) spread() (mean, std float64) {
	mean, err := stats.Mean(s)
	if err != nil {
		return 0, 0
	}
	var ss float64
	for _, v := range s {
		ss += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(ss / float64(len(s)))
}

// summary describes a non-empty sample under the given metric name.
func (s sample) summary(metric string) Summary {
	mean, std := s.spread()
	return Summary{
		Metric: metric,
		N:      len(s),
		Min:    s[0],
		Max:    s[len(s)-1],
		Mean:   mean,
		Std:    std,
		P50:    s.quantile(0.50),
		P95:    s.quantile(0.95),
	}
}
