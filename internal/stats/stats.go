// Package stats computes the scalar summaries shown next to each curve.
//
// Every function is pure: it reads its slices, never retains them, and
// returns the same result for the same input.
package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCurve is returned when a maximum is requested of a curve
	// with no points.
	ErrEmptyCurve = errors.New("empty curve")

	// ErrLengthMismatch is returned when x and y have different lengths.
	ErrLengthMismatch = errors.New("axis and curve lengths differ")

	// ErrMassDomain is returned when a mass has no finite log10, such as a
	// non-positive mass on a linear axis.
	ErrMassDomain = errors.New("mass outside the log10 domain")
)

// ArgMax returns the largest value and the index of its first occurrence.
func ArgMax(y []float64) (float64, int, error) {
	if len(y) == 0 {
		return 0, -1, ErrEmptyCurve
	}
	best, at := y[0], 0
	for i := 1; i < len(y); i++ {
		if y[i] > best {
			best, at = y[i], i
		}
	}
	return best, at, nil
}

// Min returns the smallest value.
func Min(y []float64) (float64, error) {
	if len(y) == 0 {
		return 0, ErrEmptyCurve
	}
	lo := y[0]
	for _, v := range y[1:] {
		lo = min(lo, v)
	}
	return lo, nil
}

// Mean returns the arithmetic mean.
func Mean(y []float64) (float64, error) {
	if len(y) == 0 {
		return 0, ErrEmptyCurve
	}
	var sum float64
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y)), nil
}

// Trapezoid integrates y over x with the trapezoidal rule. Curves with
// fewer than two points integrate to 0.
func Trapezoid(x, y []float64) (float64, error) {
	if err := sameLength(x, y); err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i+1 < len(y); i++ {
		sum += 0.5 * (y[i] + y[i+1]) * (x[i+1] - x[i])
	}
	return sum, nil
}

func sameLength(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(x), len(y))
	}
	return nil
}
