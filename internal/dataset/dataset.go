package dataset

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Observable selects one of the two curve tables of a dataset.
type Observable int

const (
	// Clustering is the two-point correlation function ξ(r).
	Clustering Observable = iota
	// MassFunction is the halo mass function n(M).
	MassFunction
)

func (o Observable) String() string {
	switch o {
	case Clustering:
		return "xi"
	case MassFunction:
		return "nm"
	default:
		return "observable(" + strconv.Itoa(int(o)) + ")"
	}
}

// Layout is the keying scheme of the curve tables.
type Layout string

const (
	// LayoutScan varies one parameter at a time: key = (parameter, value).
	// Parameter 0 is the fiducial (reference) model.
	LayoutScan Layout = "scan"
	// LayoutGrid is a full grid: key = one value index per parameter.
	LayoutGrid Layout = "grid"
)

// ParseLayout accepts "scan" or "grid". The empty string yields "".
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case LayoutScan:
		return LayoutScan, nil
	case LayoutGrid:
		return LayoutGrid, nil
	}
	return "", fmt.Errorf("unknown layout %q (want scan or grid)", s)
}

// MassAxis is the convention of the m_values axis.
type MassAxis string

const (
	// MassLinear means m_values are masses in M_sun.
	MassLinear MassAxis = "linear"
	// MassLog10 means m_values are log10(M / M_sun).
	MassLog10 MassAxis = "log10"
)

// ParseMassAxis accepts "linear" or "log10" ("log" is an alias of "log10").
// The empty string yields "".
func ParseMassAxis(s string) (MassAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "linear":
		return MassLinear, nil
	case "log10", "log":
		return MassLog10, nil
	}
	return "", fmt.Errorf("unknown mass axis %q (want linear or log10)", s)
}

// Dex maps an axis value to log10(M / M_sun).
func (a MassAxis) Dex(m float64) float64 {
	if a == MassLog10 {
		return m
	}
	return math.Log10(m)
}

// Threshold converts a mass in M_sun into the axis convention.
func (a MassAxis) Threshold(solarMasses float64) float64 {
	if a == MassLog10 {
		return math.Log10(solarMasses)
	}
	return solarMasses
}

// Key addresses one curve. Its length equals the dataset arity.
type Key []int

func (k Key) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "/")
}

// Equal reports whether two keys address the same curve.
func (k Key) Equal(o Key) bool { return slices.Equal(k, o) }

// Parameter describes one cosmological parameter and its discrete values.
type Parameter struct {
	Name        string    `json:"name" yaml:"name"`
	Latex       string    `json:"latex,omitempty" yaml:"latex,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Values      []float64 `json:"values" yaml:"values"`
	Labels      []string  `json:"value_labels" yaml:"value_labels"`
	RangeString string    `json:"range_string,omitempty" yaml:"range_string,omitempty"`
	// Default is the initial value index, or -1 when the document has none.
	Default int `json:"default" yaml:"default"`
}

// Count is the number of discrete values of the parameter.
func (p Parameter) Count() int { return len(p.Values) }

// Label returns the display label of value i.
func (p Parameter) Label(i int) string {
	if i >= 0 && i < len(p.Labels) {
		return p.Labels[i]
	}
	if i >= 0 && i < len(p.Values) {
		return FormatValue(p.Values[i])
	}
	return strconv.Itoa(i)
}

// Dataset is the immutable lookup table of curves.
type Dataset struct {
	rValues  []float64
	mValues  []float64
	params   []Parameter
	layout   Layout
	massAxis MassAxis
	arity    int
	xi       map[string][]float64
	nm       map[string][]float64
	fiducial Key
	metadata map[string]any
}

// RValues returns a copy of the separation axis.
func (d *Dataset) RValues() []float64 { return slices.Clone(d.rValues) }

// MValues returns a copy of the mass axis.
func (d *Dataset) MValues() []float64 { return slices.Clone(d.mValues) }

// Axis returns a copy of the x axis of an observable.
func (d *Dataset) Axis(obs Observable) []float64 {
	if obs == MassFunction {
		return d.MValues()
	}
	return d.RValues()
}

// Parameters returns a copy of the parameter descriptors.
func (d *Dataset) Parameters() []Parameter {
	out := make([]Parameter, len(d.params))
	for i, p := range d.params {
		out[i] = p
		out[i].Values = slices.Clone(p.Values)
		out[i].Labels = slices.Clone(p.Labels)
	}
	return out
}

// NumParameters is the number of parameter descriptors.
func (d *Dataset) NumParameters() int { return len(d.params) }

// Parameter returns descriptor i.
func (d *Dataset) Parameter(i int) (Parameter, bool) {
	if i < 0 || i >= len(d.params) {
		return Parameter{}, false
	}
	return d.params[i], true
}

func (d *Dataset) Layout() Layout { return d.layout }
func (d *Dataset) MassAxis() MassAxis { return d.massAxis }
func (d *Dataset) Arity() int { return d.arity }

// CurveCount is the number of ξ(r) curves present.
func (d *Dataset) CurveCount() int { return len(d.xi) }

// Metadata returns a shallow copy of the free-form metadata object.
func (d *Dataset) Metadata() map[string]any {
	out := make(map[string]any, len(d.metadata))
	for k, v := range d.metadata {
		out[k] = v
	}
	return out
}

// Description returns metadata.description when it is a string.
func (d *Dataset) Description() string {
	s, _ := d.metadata["description"].(string)
	return s
}

// Curve returns a copy of the curve at key.
func (d *Dataset) Curve(obs Observable, key Key) ([]float64, bool) {
	c, ok := d.table(obs)[key.String()]
	if !ok {
		return nil, false
	}
	return slices.Clone(c), true
}

// Lookup is Curve with an ErrCurveNotFound error for absent keys.
func (d *Dataset) Lookup(obs Observable, key Key) ([]float64, error) {
	c, ok := d.Curve(obs, key)
	if !ok {
		return nil, fmt.Errorf("%w: %s[%s]", ErrCurveNotFound, obs, key)
	}
	return c, nil
}

func (d *Dataset) table(obs Observable) map[string][]float64 {
	if obs == MassFunction {
		return d.nm
	}
	return d.xi
}

// FiducialKey returns the key of the reference model.
func (d *Dataset) FiducialKey() Key { return slices.Clone(d.fiducial) }

// KeyFor builds the curve key for an active parameter and the per-parameter
// value indices. values must have one entry per parameter.
func (d *Dataset) KeyFor(param int, values []int) Key {
	if d.layout == LayoutGrid {
		return Key(slices.Clone(values))
	}
	return Key{param, values[param]}
}

// IsReference reports whether key addresses the reference model itself:
// any key of parameter 0 in the scan layout, the fiducial key in the grid.
func (d *Dataset) IsReference(key Key) bool {
	if d.layout == LayoutGrid {
		return key.Equal(d.fiducial)
	}
	return len(key) > 0 && key[0] == 0
}

// Defaults returns the documented initial selection: the active parameter
// and one value index per parameter.
func (d *Dataset) Defaults() (param int, values []int) {
	values = make([]int, len(d.params))
	for i, p := range d.params {
		if p.Default >= 0 && p.Default < p.Count() {
			values[i] = p.Default
		}
	}
	if d.layout == LayoutScan && len(d.params) > 1 {
		param = 1
	}
	return param, values
}

// DefaultKey is the key of the default selection.
func (d *Dataset) DefaultKey() Key {
	p, v := d.Defaults()
	return d.KeyFor(p, v)
}

// FormatValue renders a parameter value with one decimal, switching to
// scientific notation for very large or very small magnitudes.
func FormatValue(v float64) string {
	a := math.Abs(v)
	if a >= 1000 || (a < 0.01 && v != 0) {
		return strconv.FormatFloat(v, 'e', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
