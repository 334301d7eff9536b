// scan/results.go
// Package: scan
package scan

// metric extracts one scalar from a row; ok is false when the row lacks it.
type metric struct {
	name string
	get  func(Row) (float64, bool)
}

var metrics = []metric{
	{"xi_max", func(r Row) (float64, bool) { return xiField(r, func(x xiStats) float64 { return x.Max }) }},
	{"xi_peak_r", func(r Row) (float64, bool) { return xiField(r, func(x xiStats) float64 { return x.PeakR }) }},
	{"xi_integral", func(r Row) (float64, bool) { return xiField(r, func(x xiStats) float64 { return x.Integral }) }},
	{"xi_zero_crossing", func(r Row) (float64, bool) {
		if r.Xi == nil || !r.Xi.HasZeroCrossing {
			return 0, false
		}
		return r.Xi.ZeroCrossing, true
	}},
	{"nm_max", func(r Row) (float64, bool) { return massField(r, func(m massStats) float64 { return m.Max }) }},
	{"nm_total_integral", func(r Row) (float64, bool) { return massField(r, func(m massStats) float64 { return m.TotalIntegral }) }},
	{"nm_high_mass_integral", func(r Row) (float64, bool) { return massField(r, func(m massStats) float64 { return m.HighMassIntegral }) }},
}

// summarize builds one Summary per metric over the rows that carry it.
// Metrics no row carries are left out.
func summarize(rows []Row) []Summary {
	out := make([]Summary, 0, len(metrics))
	for _, m := range metrics {
		var vals []float64
		for _, r := range rows {
			if v, ok := m.get(r); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		out = append(out, newSample(vals).summary(m.name))
	}
	return out
}
