// Package query resolves a selection into the set of curves to display.
//
// Resolution never fails as a whole. A curve that is absent from the
// dataset is skipped and its error recorded in Resolved.Omitted, so the
// remaining roles still render.
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/mwiater/cosmoview/internal/selection"
)

// ErrCurveNotFound is returned (inside Resolved.Omitted) for an absent key.
var ErrCurveNotFound = dataset.ErrCurveNotFound

// FiducialLabel is the display name of the reference curve.
const FiducialLabel = "Fiducial Model"

// Role is the part a curve plays in a plot.
type Role string

const (
	RolePrimary  Role = "primary"
	RoleFiducial Role = "fiducial"
	RoleMin      Role = "min"
	RoleMax      Role = "max"
)

// Options are the display toggles that shape a curve set.
type Options struct {
	ShowFiducial bool `json:"show_fiducial" yaml:"show_fiducial"`
	HideRange    bool `json:"hide_range" yaml:"hide_range"`
}

// Curve is one resolved curve with its x axis.
type Curve struct {
	Role  Role        `json:"role" yaml:"role"`
	Label string      `json:"label" yaml:"label"`
	Key   dataset.Key `json:"key" yaml:"key"`
	X     []float64   `json:"x" yaml:"x"`
	Y     []float64   `json:"y" yaml:"y"`
}

// Resolved is the ordered curve list for one observable.
type Resolved struct {
	Observable dataset.Observable `json:"-" yaml:"-"`
	Curves     []Curve            `json:"curves" yaml:"curves"`
	Omitted    []error            `json:"-" yaml:"-"`
}

// Primary returns the primary curve when it was resolved.
func (r Resolved) Primary() (Curve, bool) {
	return r.Role(RolePrimary)
}

// Role returns the first curve with the given role.
func (r Resolved) Role(role Role) (Curve, bool) {
	for _, c := range r.Curves {
		if c.Role == role {
			return c, true
		}
	}
	return Curve{}, false
}

// Set holds the resolved curves of both observables.
type Set struct {
	Xi Resolved `json:"xi" yaml:"xi"`
	Nm Resolved `json:"nm" yaml:"nm"`
}

// ResolveAll resolves both observables for the same selection.
func ResolveAll(ds *dataset.Dataset, sel selection.Selection, opts Options) Set {
	return Set{
		Xi: Resolve(ds, sel, opts, dataset.Clustering),
		Nm: Resolve(ds, sel, opts, dataset.MassFunction),
	}
}

// Resolve builds the curve list for obs in role order: primary, fiducial,
// min, max.
func Resolve(ds *dataset.Dataset, sel selection.Selection, opts Options, obs dataset.Observable) Resolved {
	out := Resolved{Observable: obs}
	x := ds.Axis(obs)

	add := func(role Role, label string, key dataset.Key) {
		y, err := ds.Lookup(obs, key)
		if err != nil {
			out.Omitted = append(out.Omitted, fmt.Errorf("%s curve: %w", role, err))
			return
		}
		out.Curves = append(out.Curves, Curve{Role: role, Label: label, Key: key, X: slices.Clone(x), Y: y})
	}

	key := ds.KeyFor(sel.Parameter, sel.Values)
	add(RolePrimary, PrimaryLabel(ds, sel), key)

	if opts.ShowFiducial && !ds.IsReference(key) {
		add(RoleFiducial, FiducialLabel, ds.FiducialKey())
	}

	if !opts.HideRange && hasRange(ds, sel.Parameter) {
		p, _ := ds.Parameter(sel.Parameter)
		lo, hi := slices.Clone(sel.Values), slices.Clone(sel.Values)
		lo[sel.Parameter], hi[sel.Parameter] = 0, p.Count()-1
		add(RoleMin, fmt.Sprintf("%s Min (%s)", p.Name, p.Label(0)), ds.KeyFor(sel.Parameter, lo))
		add(RoleMax, fmt.Sprintf("%s Max (%s)", p.Name, p.Label(p.Count()-1)), ds.KeyFor(sel.Parameter, hi))
	}
	return out
}

func hasRange(ds *dataset.Dataset, param int) bool {
	p, ok := ds.Parameter(param)
	if !ok || p.Count() < 2 {
		return false
	}
	return ds.Layout() != dataset.LayoutScan || param != 0
}

// PrimaryLabel names the selected model: "<name> = <value>" for the active
// parameter, or every dimension joined by commas in the grid layout.
func PrimaryLabel(ds *dataset.Dataset, sel selection.Selection) string {
	if ds.Layout() != dataset.LayoutGrid {
		p, _ := ds.Parameter(sel.Parameter)
		return p.Name + " = " + p.Label(sel.Value)
	}
	parts := make([]string, 0, len(sel.Values))
	for i, v := range sel.Values {
		p, _ := ds.Parameter(i)
		parts = append(parts, p.Name+" = "+p.Label(v))
	}
	return strings.Join(parts, ", ")
}
