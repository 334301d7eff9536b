// scan/runner.go
// Package: scan
package scan

import (
	"fmt"
	"time"

	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/mwiater/cosmoview/internal/query"
	"github.com/mwiater/cosmoview/internal/selection"
	"github.com/mwiater/cosmoview/internal/stats"
)

type (
	xiStats   = stats.XiStatistics
	massStats = stats.MassStatistics
)

// Sweep steps parameter param through all of its values, starting from
// opts.Base, and computes the statistics of the primary curves at each
// step. A missing curve is recorded on its row and does not abort the scan.
func Sweep(ds *dataset.Dataset, param int, opts Options) (Report, error) {
	st := selection.New(ds)
	if opts.Base != nil {
		if err := st.SetValues(opts.Base); err != nil {
			return Report{}, fmt.Errorf("scan base: %w", err)
		}
	}
	if err := st.SetParameter(param); err != nil {
		return Report{}, fmt.Errorf("scan parameter: %w", err)
	}

	p, _ := ds.Parameter(param)
	axis := ds.MassAxis()
	threshold := axis.Threshold(stats.HighMassThreshold)
	only := query.Options{HideRange: true}

	rows := make([]Row, 0, p.Count())
	for i := 0; i < p.Count(); i++ {
		if err := st.SetValue(i); err != nil {
			return Report{}, err
		}
		row := Row{Index: i, Value: p.Values[i], Label: p.Label(i), Key: st.Key()}
		set := query.ResolveAll(ds, st.Get(), only)

		var errs []error
		if c, ok := set.Xi.Primary(); ok {
			if x, err := stats.ComputeXi(c.X, c.Y); err == nil {
				row.Xi = &x
			} else {
				errs = append(errs, err)
			}
		}
		if c, ok := set.Nm.Primary(); ok {
			if m, err := stats.ComputeMass(axis, c.X, c.Y, threshold); err == nil {
				row.Mass = &m
			} else {
				errs = append(errs, err)
			}
		}
		errs = append(errs, set.Xi.Omitted...)
		errs = append(errs, set.Nm.Omitted...)
		if len(errs) > 0 {
			row.Error = errs[0].Error()
		}
		rows = append(rows, row)
	}

	return Report{
		Name:        opts.Name,
		Parameter:   p.Name,
		Index:       param,
		Rows:        rows,
		Summaries:   summarize(rows),
		GeneratedAt: time.Now(),
	}, nil
}

func xiField(r Row, f func(xiStats) float64) (float64, bool) {
	if r.Xi == nil {
		return 0, false
	}
	return f(*r.Xi), true
}

func massField(r Row, f func(massStats) float64) (float64, bool) {
	if r.Mass == nil {
		return 0, false
	}
	return f(*r.Mass), true
}
