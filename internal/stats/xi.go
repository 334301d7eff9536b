package stats

import "math"

// Strength buckets the peak clustering amplitude.
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// ClassifyStrength maps max ξ to a strength: strong above 0.5, moderate
// above 0.1, weak otherwise.
func ClassifyStrength(maxXi float64) Strength {
	switch {
	case maxXi > 0.5:
		return StrengthStrong
	case maxXi > 0.1:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// XiStatistics summarises one ξ(r) curve.
type XiStatistics struct {
	Max   float64 `json:"max" yaml:"max"`
	PeakR float64 `json:"peak_r" yaml:"peak_r"`

	// ZeroCrossing is only meaningful when HasZeroCrossing is set. Encoded
	// forms carry null when it is not.
	ZeroCrossing    float64 `json:"zero_crossing" yaml:"zero_crossing"`
	HasZeroCrossing bool    `json:"has_zero_crossing" yaml:"has_zero_crossing"`

	Integral float64 `json:"integral" yaml:"integral"`

	Min  float64 `json:"min" yaml:"min"`
	Mean float64 `json:"mean" yaml:"mean"`

	// CorrelationLength is the first r where ξ drops below a tenth of the mean.
	CorrelationLength    float64  `json:"correlation_length" yaml:"correlation_length"`
	HasCorrelationLength bool     `json:"has_correlation_length" yaml:"has_correlation_length"`
	Strength             Strength `json:"strength" yaml:"strength"`
}

// ComputeXi summarises ξ(r) sampled at r.
func ComputeXi(r, xi []float64) (XiStatistics, error) {
	if err := sameLength(r, xi); err != nil {
		return XiStatistics{}, err
	}
	maxXi, at, err := ArgMax(xi)
	if err != nil {
		return XiStatistics{}, err
	}
	s := XiStatistics{Max: maxXi, PeakR: r[at], Strength: ClassifyStrength(maxXi)}
	s.ZeroCrossing, s.HasZeroCrossing = ZeroCrossing(r, xi)
	s.Integral, _ = Trapezoid(r, xi)
	s.Min, _ = Min(xi)
	s.Mean, _ = Mean(xi)
	s.CorrelationLength, s.HasCorrelationLength = CorrelationLength(r, xi, s.Mean)
	return s, nil
}

// ZeroCrossing scans left to right and returns r[i] for the first i with
// xi[i-1] > 0 and xi[i] <= 0.
func ZeroCrossing(r, xi []float64) (float64, bool) {
	for i := 1; i < len(xi) && i < len(r); i++ {
		if xi[i-1] > 0 && xi[i] <= 0 {
			return r[i], true
		}
	}
	return 0, false
}

// CorrelationLength returns the first r where xi < 0.1*mean.
func CorrelationLength(r, xi []float64, mean float64) (float64, bool) {
	for i := 0; i < len(xi) && i < len(r); i++ {
		if xi[i] < 0.1*mean {
			return r[i], true
		}
	}
	return 0, false
}

// PowerLawResiduals returns ξ minus the reference power law 100·r^-1.8.
func PowerLawResiduals(r, xi []float64) ([]float64, error) {
	if err := sameLength(r, xi); err != nil {
		return nil, err
	}
	out := make([]float64, len(xi))
	for i := range xi {
		out[i] = xi[i] - 100*math.Pow(r[i], -1.8)
	}
	return out, nil
}
