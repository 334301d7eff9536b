package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrDatasetInvalid is returned when a document fails structural validation.
	// It is fatal for initialisation.
	ErrDatasetInvalid = errors.New("dataset invalid")

	// ErrCurveNotFound is returned when a key has no curve in the table.
	ErrCurveNotFound = errors.New("curve not found")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDatasetInvalid, fmt.Sprintf(format, args...))
}
