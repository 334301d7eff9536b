// cmd/cosmoview/selection_flags.go
package cosmoview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/cosmoview/internal/selection"
	"github.com/mwiater/cosmoview/internal/viewer"
	"github.com/spf13/cobra"
)

// selectionFlags are the flags shared by commands that address one curve.
type selectionFlags struct {
	param     int
	value     int
	grid      string
	fiducial  bool
	hideRange bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.param, "param", "p", -1, "parameter index (default: dataset default)")
	cmd.Flags().IntVarP(&f.value, "value", "v", -1, "value index of the parameter (default: dataset default)")
	cmd.Flags().StringVar(&f.grid, "grid", "", "comma separated value index for every parameter, e.g. 1,0,3,2")
	cmd.Flags().BoolVar(&f.fiducial, "fiducial", true, "overlay the fiducial model (default from config)")
	cmd.Flags().BoolVar(&f.hideRange, "hide-range", false, "hide the min/max curves of the active parameter")
}

// apply turns the flags into session commands: parameter, then the grid
// indices, then the value.
func (f *selectionFlags) apply(cmd *cobra.Command, s *viewer.Session) error {
	var cmds []selection.Command
	if f.param >= 0 {
		cmds = append(cmds, selection.SelectParameter{Index: f.param})
	}
	if f.grid != "" {
		idx, err := parseIndices(f.grid)
		if err != nil {
			return err
		}
		cmds = append(cmds, selection.SelectValues{Indices: idx})
	}
	if f.value >= 0 {
		cmds = append(cmds, selection.SelectValue{Index: f.value})
	}
	if cmd.Flags().Changed("fiducial") && f.fiducial != s.Options().ShowFiducial {
		cmds = append(cmds, selection.ToggleFiducial{})
	}
	if f.hideRange != s.Options().HideRange {
		cmds = append(cmds, selection.ToggleRange{})
	}
	for _, c := range cmds {
		if err := s.Apply(c); err != nil {
			return fmt.Errorf("%s: %w", c.CommandName(), err)
		}
	}
	return nil
}

func parseIndices(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid --grid index %q: %w", p, err)
		}
		out[i] = n
	}
	return out, nil
}
