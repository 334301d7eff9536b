package viewer

import (
	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/mwiater/cosmoview/internal/query"
	"github.com/mwiater/cosmoview/internal/selection"
	"github.com/mwiater/cosmoview/internal/stats"
)

// Frame is one fully recomputed view of a session.
type Frame struct {
	Dataset   string
	Selection selection.Selection
	Parameter dataset.Parameter
	Label     string
	Key       dataset.Key
	Options   query.Options
	Curves    query.Set

	// Xi is nil when the statistics could not be computed; XiErr says why.
	Xi    *stats.XiStatistics
	XiErr error

	Mass    *stats.MassStatistics
	MassErr error
}

// Omitted lists every curve that could not be resolved.
func (f Frame) Omitted() []error {
	out := make([]error, 0, len(f.Curves.Xi.Omitted)+len(f.Curves.Nm.Omitted))
	out = append(out, f.Curves.Xi.Omitted...)
	return append(out, f.Curves.Nm.Omitted...)
}
