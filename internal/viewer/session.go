// Package viewer ties a dataset, its selection state and the display
// toggles into one Session. Front ends (the TUI and the CLI) drive a
// Session with selection commands and render the Frame it produces.
package viewer

import (
	"io"
	"log/slog"

	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/mwiater/cosmoview/internal/query"
	"github.com/mwiater/cosmoview/internal/selection"
	"github.com/mwiater/cosmoview/internal/stats"
	"github.com/mwiater/cosmoview/scan"
)

// Session is the application context for one loaded dataset. It is not
// safe for concurrent use.
type Session struct {
	name   string
	ds     *dataset.Dataset
	state  *selection.State
	opts   query.Options
	logger *slog.Logger
}

// SessionOption configures NewSession.
type SessionOption func(*Session)

// WithName sets the dataset name shown in frames.
func WithName(name string) SessionOption { return func(s *Session) { s.name = name } }

// WithOptions sets the initial display toggles.
func WithOptions(o query.Options) SessionOption { return func(s *Session) { s.opts = o } }

// WithLogger sets the session logger. Commands are logged at debug level.
func WithLogger(l *slog.Logger) SessionOption { return func(s *Session) { s.logger = l } }

// NewSession starts a session at the dataset's default selection.
func NewSession(ds *dataset.Dataset, opts ...SessionOption) *Session {
	s := &Session{
		ds:     ds,
		state:  selection.New(ds),
		opts:   query.Options{ShowFiducial: true},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Name() string { return s.name }
func (s *Session) Dataset() *dataset.Dataset { return s.ds }
func (s *Session) Selection() selection.Selection { return s.state.Get() }
func (s *Session) Options() query.Options { return s.opts }

// Apply executes one command. A rejected command returns its error and
// leaves the session unchanged.
func (s *Session) Apply(cmd selection.Command) error {
	switch cmd.(type) {
	case selection.ToggleFiducial:
		s.opts.ShowFiducial = !s.opts.ShowFiducial
	case selection.ToggleRange:
		s.opts.HideRange = !s.opts.HideRange
	default:
		if err := s.state.Apply(cmd); err != nil {
			s.logger.Debug("command rejected", "command", cmd.CommandName(), "error", err)
			return err
		}
	}
	s.logger.Debug("command applied",
		"command", cmd.CommandName(),
		"key", s.state.Key().String(),
		"show_fiducial", s.opts.ShowFiducial,
		"hide_range", s.opts.HideRange,
	)
	return nil
}

// Frame recomputes everything a view needs from the current state.
func (s *Session) Frame() Frame {
	sel := s.state.Get()
	p, _ := s.ds.Parameter(sel.Parameter)
	f := Frame{
		Dataset:   s.name,
		Selection: sel,
		Parameter: p,
		Label:     query.PrimaryLabel(s.ds, sel),
		Key:       s.state.Key(),
		Options:   s.opts,
		Curves:    query.ResolveAll(s.ds, sel, s.opts),
	}
	f.Xi, f.XiErr = xiStatistics(f.Curves.Xi)
	f.Mass, f.MassErr = massStatistics(s.ds.MassAxis(), f.Curves.Nm)
	return f
}

// Scan sweeps parameter param from the current selection.
func (s *Session) Scan(param int) (scan.Report, error) {
	return scan.Sweep(s.ds, param, scan.Options{Base: s.state.Get().Values, Name: s.name})
}

func xiStatistics(r query.Resolved) (*stats.XiStatistics, error) {
	c, ok := r.Primary()
	if !ok {
		return nil, firstOmitted(r)
	}
	st, err := stats.ComputeXi(c.X, c.Y)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func massStatistics(axis dataset.MassAxis, r query.Resolved) (*stats.MassStatistics, error) {
	c, ok := r.Primary()
	if !ok {
		return nil, firstOmitted(r)
	}
	st, err := stats.ComputeMass(axis, c.X, c.Y, axis.Threshold(stats.HighMassThreshold))
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func firstOmitted(r query.Resolved) error {
	if len(r.Omitted) > 0 {
		return r.Omitted[0]
	}
	return query.ErrCurveNotFound
}
