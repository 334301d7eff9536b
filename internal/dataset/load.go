package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// document is the on-disk JSON shape.
type document struct {
	RValues    []float64           `json:"r_values"`
	MValues    []float64           `json:"m_values"`
	Parameters jsoniter.RawMessage `json:"parameters"`
	XiData     any                 `json:"xi_data"`
	NmData     any                 `json:"nm_data"`
	MassAxis   string              `json:"mass_axis"`
	Layout     string              `json:"layout"`
	Fiducial   []int               `json:"fiducial"`
	Metadata   map[string]any      `json:"metadata"`
}

type loadOptions struct {
	massAxis MassAxis
	layout   Layout
	source   string
	logger   *slog.Logger
}

// Option configures Load.
type Option func(*loadOptions)

// WithMassAxis declares the mass axis convention, overriding the document.
func WithMassAxis(a MassAxis) Option { return func(o *loadOptions) { o.massAxis = a } }

// WithLayout forces the keying layout, overriding the document.
func WithLayout(l Layout) Option { return func(o *loadOptions) { o.layout = l } }

// WithSource names the dataset origin in log lines.
func WithSource(name string) Option { return func(o *loadOptions) { o.source = name } }

// WithLogger sets the logger used for the load summary.
func WithLogger(l *slog.Logger) Option { return func(o *loadOptions) { o.logger = l } }

// LoadFile opens path and calls Load.
func LoadFile(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open dataset: %w", err)
	}
	defer f.Close()
	return Load(f, append([]Option{WithSource(path)}, opts...)...)
}

// Load decodes and validates a dataset document. Any structural problem is
// reported as an error wrapping ErrDatasetInvalid.
func Load(r io.Reader, opts ...Option) (*Dataset, error) {
	o := loadOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, invalidf("could not parse dataset JSON: %v", err)
	}

	ds, err := build(doc, o)
	if err != nil {
		return nil, err
	}

	o.logger.Info("dataset loaded",
		"source", o.source,
		"layout", ds.layout,
		"arity", ds.arity,
		"parameters", len(ds.params),
		"curves", len(ds.xi),
		"r_bins", len(ds.rValues),
		"m_bins", len(ds.mValues),
		"mass_axis", ds.massAxis,
	)
	return ds, nil
}

func build(doc document, o loadOptions) (*Dataset, error) {
	if doc.RValues == nil {
		return nil, invalidf("missing required field %q", "r_values")
	}
	if doc.MValues == nil {
		return nil, invalidf("missing required field %q", "m_values")
	}
	if err := checkAxis("r_values", doc.RValues, true); err != nil {
		return nil, err
	}
	if err := checkAxis("m_values", doc.MValues, false); err != nil {
		return nil, err
	}

	params, err := parseParameters(doc.Parameters)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, invalidf("parameters is empty")
	}
	for i, p := range params {
		if p.Count() == 0 {
			return nil, invalidf("parameter %d (%s) has no values", i, p.Name)
		}
	}

	xi, err := flattenCurves("xi_data", doc.XiData)
	if err != nil {
		return nil, err
	}
	nm, err := flattenCurves("nm_data", doc.NmData)
	if err != nil {
		return nil, err
	}
	if xi.arity != nm.arity {
		return nil, invalidf("xi_data arity %d differs from nm_data arity %d", xi.arity, nm.arity)
	}

	massAxis, err := resolveMassAxis(o.massAxis, doc)
	if err != nil {
		return nil, err
	}
	if massAxis == MassLinear {
		for i, m := range doc.MValues {
			if m <= 0 {
				return nil, invalidf("m_values[%d] = %g is not positive on a linear mass axis", i, m)
			}
		}
	}

	layout, err := resolveLayout(o.layout, doc, xi.arity, params)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		rValues:  doc.RValues,
		mValues:  doc.MValues,
		params:   params,
		layout:   layout,
		massAxis: massAxis,
		arity:    xi.arity,
		xi:       xi.curves,
		nm:       nm.curves,
		metadata: doc.Metadata,
	}
	if ds.metadata == nil {
		ds.metadata = map[string]any{}
	}

	if err := ds.checkKeys(xi); err != nil {
		return nil, err
	}
	if err := ds.checkKeys(nm); err != nil {
		return nil, err
	}
	if err := ds.checkLengths(); err != nil {
		return nil, err
	}
	if ds.fiducial, err = ds.resolveFiducial(doc.Fiducial); err != nil {
		return nil, err
	}
	for _, required := range []struct {
		what string
		key  Key
	}{{"fiducial", ds.fiducial}, {"default selection", ds.DefaultKey()}} {
		for _, obs := range []Observable{Clustering, MassFunction} {
			if _, ok := ds.table(obs)[required.key.String()]; !ok {
				return nil, invalidf("%s curve %s[%s] is missing", required.what, obs, required.key)
			}
		}
	}
	return ds, nil
}

func checkAxis(name string, axis []float64, positive bool) error {
	if len(axis) == 0 {
		return invalidf("%s is empty", name)
	}
	for i, v := range axis {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidf("%s[%d] is not finite", name, i)
		}
		if positive && v <= 0 {
			return invalidf("%s[%d] = %g is not positive", name, i, v)
		}
		if i > 0 && v <= axis[i-1] {
			return invalidf("%s is not strictly increasing at index %d", name, i)
		}
	}
	return nil
}

func resolveMassAxis(override MassAxis, doc document) (MassAxis, error) {
	if override != "" {
		return override, nil
	}
	s := doc.MassAxis
	if s == "" {
		s, _ = doc.Metadata["mass_axis"].(string)
	}
	a, err := ParseMassAxis(s)
	if err != nil {
		return "", invalidf("%v", err)
	}
	if a == "" {
		return "", invalidf("mass axis convention is not declared (set mass_axis to linear or log10)")
	}
	return a, nil
}

func resolveLayout(override Layout, doc document, arity int, params []Parameter) (Layout, error) {
	l := override
	if l == "" {
		s := doc.Layout
		if s == "" {
			s, _ = doc.Metadata["layout"].(string)
		}
		parsed, err := ParseLayout(s)
		if err != nil {
			return "", invalidf("%v", err)
		}
		l = parsed
	}
	if l == "" {
		dataType, _ := doc.Metadata["data_type"].(string)
		switch {
		case dataType == "one_by_one_parameters":
			l = LayoutScan
		case arity == 2 && params[0].Count() == 1:
			l = LayoutScan
		case arity == len(params):
			l = LayoutGrid
		default:
			return "", invalidf("cannot infer layout from arity %d and %d parameters", arity, len(params))
		}
	}

	switch l {
	case LayoutScan:
		if arity != 2 {
			return "", invalidf("scan layout needs arity 2, curves have arity %d", arity)
		}
	case LayoutGrid:
		if arity != len(params) {
			return "", invalidf("grid layout needs arity %d, curves have arity %d", len(params), arity)
		}
	}
	return l, nil
}

// checkKeys rejects keys outside the parameter value ranges.
func (d *Dataset) checkKeys(t *curveTable) error {
	for s := range t.curves {
		k := keyFromString(s)
		switch d.layout {
		case LayoutScan:
			if k[0] >= len(d.params) {
				return invalidf("%s[%s]: parameter index out of range", t.name, s)
			}
			if k[1] >= d.params[k[0]].Count() {
				return invalidf("%s[%s]: value index out of range for %s", t.name, s, d.params[k[0]].Name)
			}
		case LayoutGrid:
			for dim, v := range k {
				if v >= d.params[dim].Count() {
					return invalidf("%s[%s]: value index out of range for %s", t.name, s, d.params[dim].Name)
				}
			}
		}
	}
	return nil
}

func (d *Dataset) checkLengths() error {
	for s, c := range d.xi {
		if len(c) != len(d.rValues) {
			return invalidf("xi_data[%s] has %d points, r_values has %d", s, len(c), len(d.rValues))
		}
	}
	for s, c := range d.nm {
		if len(c) != len(d.mValues) {
			return invalidf("nm_data[%s] has %d points, m_values has %d", s, len(c), len(d.mValues))
		}
	}
	return nil
}

func (d *Dataset) resolveFiducial(declared []int) (Key, error) {
	if d.layout == LayoutScan {
		return Key{0, 0}, nil
	}
	if declared == nil {
		return make(Key, d.arity), nil
	}
	if len(declared) != d.arity {
		return nil, invalidf("fiducial has %d indices, want %d", len(declared), d.arity)
	}
	for dim, v := range declared {
		if v < 0 || v >= d.params[dim].Count() {
			return nil, invalidf("fiducial index %d out of range for %s", v, d.params[dim].Name)
		}
	}
	return Key(declared), nil
}
