package scan

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/mwiater/cosmoview/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = dataset.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func TestSample_Quantile(t *testing.T) {
	vals := []float64{4, 1, 3, 2}
	s := newSample(vals)
	assert.Equal(t, 1.0, s.quantile(0))
	assert.Equal(t, 4.0, s.quantile(1))
	assert.Equal(t, 4.0, s.quantile(1.5))
	assert.InDelta(t, 2.5, s.quantile(0.5), 1e-12)
	assert.InDelta(t, 3.85, s.quantile(0.95), 1e-12)
	assert.Equal(t, []float64{4, 1, 3, 2}, vals, "input is not reordered")
	assert.Zero(t, sample(nil).quantile(0.5))
}

func TestSample_Spread(t *testing.T) {
	m, s := newSample([]float64{2, 4, 4, 4, 5, 5, 7, 9}).spread()
	assert.Equal(t, 5.0, m)
	assert.Equal(t, 2.0, s)

	m, s = sample(nil).spread()
	assert.Zero(t, m)
	assert.Zero(t, s)
}

func TestSample_Summary(t *testing.T) {
	sum := newSample([]float64{3, 1, 2}).summary("xi_max")
	assert.Equal(t, Summary{Metric: "xi_max", N: 3, Min: 1, Max: 3, Mean: 2, Std: sum.Std, P50: 2, P95: sum.P95}, sum)
	assert.InDelta(t, 0.816496580927726, sum.Std, 1e-12)
	assert.InDelta(t, 2.9, sum.P95, 1e-12)
}

func TestSweep_Scan(t *testing.T) {
	ds, err := dataset.LoadFile("../internal/dataset/testdata/scan.json", quiet)
	require.NoError(t, err)

	rep, err := Sweep(ds, 1, Options{Name: "fixture"})
	require.NoError(t, err)

	assert.Equal(t, "Omega_m", rep.Parameter)
	assert.Equal(t, "fixture", rep.Name)
	require.Len(t, rep.Rows, 3)
	for i, row := range rep.Rows {
		assert.Equal(t, i, row.Index)
		assert.Equal(t, dataset.Key{1, i}, row.Key)
		require.NotNil(t, row.Xi)
		require.NotNil(t, row.Mass)
		assert.Empty(t, row.Error)
	}
	assert.Equal(t, "0.5", rep.Rows[2].Label)
	assert.Equal(t, 2.0, rep.Rows[1].Xi.Max)

	byName := map[string]Summary{}
	for _, s := range rep.Summaries {
		byName[s.Metric] = s
	}
	xiMax := byName["xi_max"]
	assert.Equal(t, 3, xiMax.N)
	assert.Equal(t, 1.5, xiMax.Min)
	assert.Equal(t, 3.0, xiMax.Max)
	assert.InDelta(t, 6.5/3, xiMax.Mean, 1e-12)
	assert.Equal(t, 1, byName["xi_zero_crossing"].N, "only one curve crosses zero")
}

func TestSweep_OutOfRange(t *testing.T) {
	ds, err := dataset.LoadFile("../internal/dataset/testdata/scan.json", quiet)
	require.NoError(t, err)

	_, err = Sweep(ds, 5, Options{})
	assert.ErrorIs(t, err, selection.ErrIndexOutOfRange)

	_, err = Sweep(ds, 1, Options{Base: []int{0}})
	assert.ErrorIs(t, err, selection.ErrIndexOutOfRange)
}

func TestSweep_GridKeepsBase(t *testing.T) {
	ds, err := dataset.LoadFile("../internal/dataset/testdata/grid.json", quiet)
	require.NoError(t, err)

	rep, err := Sweep(ds, 1, Options{Base: []int{1, 0}})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 3)
	assert.Equal(t, dataset.Key{1, 2}, rep.Rows[2].Key)
	assert.Equal(t, 6e-2, rep.Rows[2].Mass.Max)
}

func TestSweep_MissingCurveIsRecorded(t *testing.T) {
	doc := `{
	  "r_values": [1, 2], "m_values": [13, 14], "mass_axis": "log10",
	  "parameters": [{"name": "Fiducial Model", "values": [0]}, {"name": "h", "values": [0.6, 0.7]}],
	  "xi_data": {"0": {"0": [1, 0.5]}, "1": {"0": [2, 1]}},
	  "nm_data": {"0": {"0": [1, 0.5]}, "1": {"0": [2, 1]}}
	}`
	ds, err := dataset.Load(strings.NewReader(doc), quiet)
	require.NoError(t, err)

	rep, err := Sweep(ds, 1, Options{})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.NotNil(t, rep.Rows[0].Xi)
	assert.Nil(t, rep.Rows[1].Xi)
	assert.Contains(t, rep.Rows[1].Error, "not found")
	assert.Equal(t, 1, rep.Summaries[0].N)
}
