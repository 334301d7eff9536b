package stats

import jsoniter "github.com/json-iterator/go"

// xiWire is the serialised form of XiStatistics: a feature that was not
// found encodes as null instead of a numeric zero.
type xiWire struct {
	Max                  float64  `json:"max" yaml:"max"`
	PeakR                float64  `json:"peak_r" yaml:"peak_r"`
	ZeroCrossing         *float64 `json:"zero_crossing" yaml:"zero_crossing"`
	HasZeroCrossing      bool     `json:"has_zero_crossing" yaml:"has_zero_crossing"`
	Integral             float64  `json:"integral" yaml:"integral"`
	Min                  float64  `json:"min" yaml:"min"`
	Mean                 float64  `json:"mean" yaml:"mean"`
	CorrelationLength    *float64 `json:"correlation_length" yaml:"correlation_length"`
	HasCorrelationLength bool     `json:"has_correlation_length" yaml:"has_correlation_length"`
	Strength             Strength `json:"strength" yaml:"strength"`
}

func (s XiStatistics) wire() xiWire {
	w := xiWire{
		Max:                  s.Max,
		PeakR:                s.PeakR,
		HasZeroCrossing:      s.HasZeroCrossing,
		Integral:             s.Integral,
		Min:                  s.Min,
		Mean:                 s.Mean,
		HasCorrelationLength: s.HasCorrelationLength,
		Strength:             s.Strength,
	}
	if s.HasZeroCrossing {
		v := s.ZeroCrossing
		w.ZeroCrossing = &v
	}
	if s.HasCorrelationLength {
		v := s.CorrelationLength
		w.CorrelationLength = &v
	}
	return w
}

// MarshalJSON encodes missing features as null.
func (s XiStatistics) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(s.wire())
}

// MarshalYAML encodes missing features as null.
func (s XiStatistics) MarshalYAML() (any, error) {
	return s.wire(), nil
}
