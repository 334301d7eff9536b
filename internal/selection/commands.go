package selection

import "fmt"

// Command is one user intent. Front ends translate key presses and flags
// into commands; the viewer session applies them.
type Command interface {
	CommandName() string
}

// SelectParameter activates a parameter.
type SelectParameter struct{ Index int }

// SelectValue selects a value of the active parameter.
type SelectValue struct{ Index int }

// SelectValues sets the value index of every parameter (grid navigation).
type SelectValues struct{ Indices []int }

// StepValue moves the active value index by Delta, clamping unless Wrap.
type StepValue struct {
	Delta int
	Wrap  bool
}

// ResetSelection returns to the dataset default.
type ResetSelection struct{}

// ToggleFiducial flips whether the fiducial curve is overlaid.
type ToggleFiducial struct{}

// ToggleRange flips whether the min/max curves are overlaid.
type ToggleRange struct{}

func (SelectParameter) CommandName() string { return "select-parameter" }
func (SelectValue) CommandName() string { return "select-value" }
func (SelectValues) CommandName() string { return "select-values" }
func (StepValue) CommandName() string { return "step-value" }
func (ResetSelection) CommandName() string { return "reset" }
func (ToggleFiducial) CommandName() string { return "toggle-fiducial" }
func (ToggleRange) CommandName() string { return "toggle-range" }

// Apply executes a selection command. Display toggles are not selection
// state and are reported as unsupported.
func (s *State) Apply(cmd Command) error {
	switch c := cmd.(type) {
	case SelectParameter:
		return s.SetParameter(c.Index)
	case SelectValue:
		return s.SetValue(c.Index)
	case SelectValues:
		return s.SetValues(c.Indices)
	case StepValue:
		s.Step(c.Delta, c.Wrap)
		return nil
	case ResetSelection:
		s.Reset()
		return nil
	default:
		return fmt.Errorf("selection does not handle command %q", cmd.CommandName())
	}
}
