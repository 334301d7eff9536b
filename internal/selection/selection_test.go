package selection

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, name string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.LoadFile("../dataset/testdata/"+name,
		dataset.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return ds
}

func TestNew_StartsAtDefault(t *testing.T) {
	s := New(load(t, "scan.json"))
	sel := s.Get()
	assert.Equal(t, 1, sel.Parameter)
	assert.Equal(t, 1, sel.Value)
	assert.Equal(t, dataset.Key{1, 1}, s.Key())

	g := New(load(t, "grid.json"))
	assert.Equal(t, 0, g.Get().Parameter)
	assert.Equal(t, dataset.Key{0, 0}, g.Key())
}

func TestSetParameter_ResetsValue(t *testing.T) {
	s := New(load(t, "scan.json"))
	require.NoError(t, s.SetValue(2))
	require.NoError(t, s.SetParameter(2))
	assert.Equal(t, Selection{Parameter: 2, Value: 0, Values: []int{0, 2, 0}}, s.Get())
	assert.Equal(t, dataset.Key{2, 0}, s.Key())
}

func TestRejectedMutationsLeaveStateUnchanged(t *testing.T) {
	s := New(load(t, "scan.json"))
	before := s.Get()

	for _, err := range []error{
		s.SetParameter(-1),
		s.SetParameter(3),
		s.SetValue(3),
		s.SetValue(-1),
		s.SetValues([]int{0, 1}),
		s.SetValues([]int{0, 1, 5}),
	} {
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, before, s.Get())
}

func TestGetReturnsCopy(t *testing.T) {
	s := New(load(t, "scan.json"))
	sel := s.Get()
	sel.Values[1] = 99
	assert.Equal(t, 1, s.Get().Value)
}

func TestStep(t *testing.T) {
	s := New(load(t, "scan.json"))

	s.Step(5, false)
	assert.Equal(t, 2, s.Get().Value)
	s.Step(-9, false)
	assert.Equal(t, 0, s.Get().Value)

	s.Step(-1, true)
	assert.Equal(t, 2, s.Get().Value)
	s.Step(1, true)
	assert.Equal(t, 0, s.Get().Value)
}

func TestGridKeyTracksEveryDimension(t *testing.T) {
	s := New(load(t, "grid.json"))
	require.NoError(t, s.SetValues([]int{1, 2}))
	assert.Equal(t, dataset.Key{1, 2}, s.Key())

	require.NoError(t, s.SetParameter(1))
	assert.Equal(t, dataset.Key{1, 0}, s.Key(), "activating a dimension resets only that dimension")
	require.NoError(t, s.SetValue(1))
	assert.Equal(t, dataset.Key{1, 1}, s.Key())
}

func TestApply(t *testing.T) {
	s := New(load(t, "scan.json"))

	require.NoError(t, s.Apply(SelectParameter{Index: 1}))
	require.NoError(t, s.Apply(SelectValue{Index: 2}))
	assert.Equal(t, dataset.Key{1, 2}, s.Key())

	require.NoError(t, s.Apply(StepValue{Delta: 1, Wrap: true}))
	assert.Equal(t, 0, s.Get().Value)

	require.NoError(t, s.Apply(ResetSelection{}))
	assert.Equal(t, dataset.Key{1, 1}, s.Key())

	assert.ErrorIs(t, s.Apply(SelectValue{Index: 7}), ErrIndexOutOfRange)
	assert.Error(t, s.Apply(ToggleFiducial{}))
}
