package dataset

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func loadString(t *testing.T, doc string, opts ...Option) (*Dataset, error) {
	t.Helper()
	return Load(strings.NewReader(doc), append([]Option{quiet}, opts...)...)
}

func TestLoadFile_Scan(t *testing.T) {
	ds, err := LoadFile("testdata/scan.json", quiet)
	require.NoError(t, err)

	assert.Equal(t, LayoutScan, ds.Layout())
	assert.Equal(t, MassLinear, ds.MassAxis())
	assert.Equal(t, 2, ds.Arity())
	assert.Equal(t, 3, ds.NumParameters())
	assert.Equal(t, 5, ds.CurveCount())
	assert.Equal(t, Key{0, 0}, ds.FiducialKey())
	assert.Equal(t, "test scan dataset", ds.Description())

	p, ok := ds.Parameter(1)
	require.True(t, ok)
	assert.Equal(t, "Omega_m", p.Name)
	assert.Equal(t, []string{"0.1", "0.3", "0.5"}, p.Labels)
	assert.Equal(t, "Omega_m: 0.1 - 0.5", p.RangeString)

	param, values := ds.Defaults()
	assert.Equal(t, 1, param)
	assert.Equal(t, []int{0, 1, 0}, values)
	assert.Equal(t, Key{1, 1}, ds.DefaultKey())

	xi, ok := ds.Curve(Clustering, Key{1, 1})
	require.True(t, ok)
	assert.Equal(t, []float64{2, 1, 0.5, -1}, xi)
}

func TestLoadFile_GridInferredFromArity(t *testing.T) {
	ds, err := LoadFile("testdata/grid.json", quiet)
	require.NoError(t, err)

	assert.Equal(t, LayoutGrid, ds.Layout())
	assert.Equal(t, MassLog10, ds.MassAxis(), "mass axis is read from metadata")
	assert.Equal(t, 2, ds.Arity())
	assert.Equal(t, Key{0, 0}, ds.FiducialKey())

	names := []string{}
	for _, p := range ds.Parameters() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"param1", "param2"}, names)

	param, values := ds.Defaults()
	assert.Equal(t, 0, param)
	assert.Equal(t, Key{0, 0}, ds.KeyFor(param, values))

	nm, err := ds.Lookup(MassFunction, Key{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{6e-2, 6e-3, 6e-4, 6e-5}, nm)
}

func TestLoad_ReturnsCopies(t *testing.T) {
	ds, err := LoadFile("testdata/scan.json", quiet)
	require.NoError(t, err)

	r := ds.RValues()
	r[0] = 999
	assert.Equal(t, 1.0, ds.RValues()[0])

	c, _ := ds.Curve(Clustering, Key{0, 0})
	c[0] = 999
	c2, _ := ds.Curve(Clustering, Key{0, 0})
	assert.Equal(t, 2.0, c2[0])

	params := ds.Parameters()
	params[1].Labels[0] = "changed"
	p, _ := ds.Parameter(1)
	assert.Equal(t, "0.1", p.Labels[0])
}

func TestLoad_MassAxisOverride(t *testing.T) {
	ds, err := LoadFile("testdata/scan.json", quiet, WithMassAxis(MassLog10))
	require.NoError(t, err)
	assert.Equal(t, MassLog10, ds.MassAxis())
}

func TestLoad_KeyedParameterObject(t *testing.T) {
	doc := `{
		"r_values": [1, 2],
		"m_values": [1e12, 1e13],
		"mass_axis": "linear",
		"parameters": {
			"1": {"name": "Ω_m", "description": "Matter density", "range": [0.1, 0.5], "values": [0, 1]},
			"0": {"name": "Fiducial", "values": [0, 0]}
		},
		"xi_data": [[[1, 0], [1, 0]], [[2, 1], [3, 1]]],
		"nm_data": [[[1, 0], [1, 0]], [[2, 1], [3, 1]]],
		"metadata": {"data_type": "one_by_one_parameters"}
	}`
	ds, err := loadString(t, doc)
	require.NoError(t, err)
	assert.Equal(t, LayoutScan, ds.Layout(), "data_type selects the scan layout")

	p0, _ := ds.Parameter(0)
	p1, _ := ds.Parameter(1)
	assert.Equal(t, "Fiducial", p0.Name)
	assert.Equal(t, "Ω_m", p1.Name)
	assert.Equal(t, "Matter density", p1.Description)
}

func TestLoad_SparseObjectCurves(t *testing.T) {
	doc := `{
		"r_values": [1, 2],
		"m_values": [12, 13],
		"mass_axis": "log10",
		"layout": "scan",
		"parameters": [{"name": "Fiducial", "values": [0]}, {"name": "h", "values": [0.5, 0.6, 0.7]}],
		"xi_data": {"0": {"0": [1, 0]}, "1": {"0": [2, 1], "2": [3, 1]}},
		"nm_data": {"0": {"0": [1, 0]}, "1": {"0": [2, 1], "2": [3, 1]}}
	}`
	ds, err := loadString(t, doc)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.CurveCount())

	_, err = ds.Lookup(Clustering, Key{1, 1})
	assert.ErrorIs(t, err, ErrCurveNotFound)
}

func TestLoad_Invalid(t *testing.T) {
	const base = `"r_values": [1, 2], "m_values": [1, 2], "mass_axis": "linear",
		"parameters": [{"name": "Fiducial", "values": [0]}, {"name": "h", "values": [0.5, 0.6]}]`
	const curves = `"xi_data": [[[1, 0]], [[2, 1], [3, 1]]], "nm_data": [[[1, 0]], [[2, 1], [3, 1]]]`

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"not json", `{`, "could not parse"},
		{"missing r_values", `{"m_values": [1], "parameters": [], ` + curves + `}`, "r_values"},
		{"missing parameters", `{"r_values": [1, 2], "m_values": [1, 2], "mass_axis": "linear", ` + curves + `}`, "parameters"},
		{"missing xi_data", `{` + base + `, "nm_data": [[[1, 0]]]}`, "xi_data"},
		{"missing nm_data", `{` + base + `, "xi_data": [[[1, 0]]]}`, "nm_data"},
		{"unsorted r", `{"r_values": [2, 1], "m_values": [1, 2], "parameters": [{"values": [0]}], ` + curves + `}`, "strictly increasing"},
		{"non-positive r", `{"r_values": [0, 1], "m_values": [1, 2], "parameters": [{"values": [0]}], ` + curves + `}`, "not positive"},
		{"zero-value parameter", `{"r_values": [1, 2], "m_values": [1, 2], "mass_axis": "linear", "parameters": [{"name": "x", "values": []}], ` + curves + `}`, "has no values"},
		{"short curve", `{` + base + `, "xi_data": [[[1]], [[2, 1], [3, 1]]], "nm_data": [[[1, 0]], [[2, 1], [3, 1]]]}`, "has 1 points"},
		{"ragged depth", `{` + base + `, "xi_data": [[[1, 0]], [2, 1]], "nm_data": [[[1, 0]], [[2, 1], [3, 1]]]}`, "nesting depth"},
		{"arity mismatch", `{` + base + `, "xi_data": [[[1, 0]], [[2, 1], [3, 1]]], "nm_data": [[[[1, 0]]]]}`, "arity"},
		{"non-numeric", `{` + base + `, "xi_data": [[[1, "a"]], [[2, 1], [3, 1]]], "nm_data": [[[1, 0]], [[2, 1], [3, 1]]]}`, "not a number"},
		{"value out of range", `{` + base + `, "xi_data": [[[1, 0]], [[2, 1], [3, 1], [4, 1]]], "nm_data": [[[1, 0]], [[2, 1], [3, 1]]]}`, "out of range"},
		{"no mass axis", `{"r_values": [1, 2], "m_values": [1, 2], "parameters": [{"name": "Fiducial", "values": [0]}, {"name": "h", "values": [0.5, 0.6]}], ` + curves + `}`, "mass axis"},
		{"non-positive linear mass", `{"r_values": [1, 2], "m_values": [0, 1e14], "mass_axis": "linear", "parameters": [{"name": "Fiducial", "values": [0]}, {"name": "h", "values": [0.5, 0.6]}], ` + curves + `}`, "not positive on a linear mass axis"},
		{"bad mass axis", `{"r_values": [1, 2], "m_values": [1, 2], "mass_axis": "ln", "parameters": [{"name": "Fiducial", "values": [0]}, {"name": "h", "values": [0.5, 0.6]}], ` + curves + `}`, "unknown mass axis"},
		{"missing fiducial", `{` + base + `, "xi_data": [null, [[2, 1], [3, 1]]], "nm_data": [[[1, 0]], [[2, 1], [3, 1]]]}`, "fiducial curve"},
		{"missing default", `{` + base + `, "xi_data": [[[1, 0]], {"1": [3, 1]}], "nm_data": [[[1, 0]], [[2, 1], [3, 1]]]}`, "default selection"},
		{"unknown layout", `{` + base + `, "layout": "cube", ` + curves + `}`, "unknown layout"},
		{"layout mismatch", `{` + base + `, "layout": "scan", "xi_data": [[[[1, 0]]]], "nm_data": [[[[1, 0]]]]}`, "scan layout needs arity 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadString(t, tt.doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDatasetInvalid), "error %v should wrap ErrDatasetInvalid", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.json", quiet)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDatasetInvalid)
}

func TestGridFiducialDeclared(t *testing.T) {
	doc := `{
		"r_values": [1, 2], "m_values": [1, 2], "mass_axis": "linear", "layout": "grid",
		"fiducial": [1, 0],
		"parameters": [{"name": "a", "values": [0, 1]}, {"name": "b", "values": [0]}],
		"xi_data": [[[1, 0]], [[2, 1]]],
		"nm_data": [[[1, 0]], [[2, 1]]]
	}`
	ds, err := loadString(t, doc)
	require.NoError(t, err)
	assert.Equal(t, Key{1, 0}, ds.FiducialKey())
	assert.True(t, ds.IsReference(Key{1, 0}))
	assert.False(t, ds.IsReference(Key{0, 0}))
}
