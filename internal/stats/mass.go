package stats

import (
	"fmt"
	"math"
)

const (
	// HighMassThreshold is the lower mass bound of the high-mass integral, in M_sun.
	HighMassThreshold = 1e14

	// FallbackBinWidthDex is the width given to the last mass bin, which has
	// no right neighbour to measure against.
	FallbackBinWidthDex = 0.1
)

// DexAxis maps a mass-axis value to log10(M / M_sun). dataset.MassAxis
// implements it for both the linear and the log10 conventions.
type DexAxis interface {
	Dex(m float64) float64
}

// MassStatistics summarises one n(M) curve.
type MassStatistics struct {
	Max float64 `json:"max" yaml:"max"`

	// PeakMass is in the axis convention; PeakLog10Mass is log10(M / M_sun).
	PeakMass      float64 `json:"peak_mass" yaml:"peak_mass"`
	PeakLog10Mass float64 `json:"peak_log10_mass" yaml:"peak_log10_mass"`

	// TotalIntegral is ∫ n(M) dlog10 M over the whole axis.
	TotalIntegral float64 `json:"total_integral" yaml:"total_integral"`

	// HighMassIntegral restricts the integral to bins at or above the threshold.
	HighMassIntegral float64 `json:"high_mass_integral" yaml:"high_mass_integral"`
	Threshold        float64 `json:"threshold" yaml:"threshold"`
}

// ComputeMass summarises n(M) sampled at m. threshold uses the same
// convention as m, see dataset.MassAxis.Threshold.
func ComputeMass(axis DexAxis, m, nm []float64, threshold float64) (MassStatistics, error) {
	if err := sameLength(m, nm); err != nil {
		return MassStatistics{}, err
	}
	maxNm, at, err := ArgMax(nm)
	if err != nil {
		return MassStatistics{}, err
	}

	dex := make([]float64, len(m))
	for i, v := range m {
		dex[i] = axis.Dex(v)
		if math.IsNaN(dex[i]) || math.IsInf(dex[i], 0) {
			return MassStatistics{}, fmt.Errorf("%w: m[%d] = %g", ErrMassDomain, i, v)
		}
	}

	s := MassStatistics{Max: maxNm, PeakMass: m[at], PeakLog10Mass: dex[at], Threshold: threshold}
	s.TotalIntegral, _ = Trapezoid(dex, nm)
	s.HighMassIntegral = highMassIntegral(m, dex, nm, threshold)
	return s, nil
}

// highMassIntegral sums n[i]·Δ_i over bins with m[i] >= threshold, where
// Δ_i = dex[i+1]-dex[i] and the last bin uses FallbackBinWidthDex.
func highMassIntegral(m, dex, nm []float64, threshold float64) float64 {
	var sum float64
	for i := range m {
		if m[i] < threshold {
			continue
		}
		width := FallbackBinWidthDex
		if i+1 < len(dex) {
			width = dex[i+1] - dex[i]
		}
		sum += nm[i] * width
	}
	return sum
}
