package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

const (
	// DefaultPreparationMinutes is offered to the business when accepting.
	DefaultPreparationMinutes = 20
	MinPreparationMinutes     = 5
	PreparationStepMinutes    = 5
)

// PreparationTime is the business estimate in minutes, a multiple of 5 and
// at least 5.
type PreparationTime int

func NewPreparationTime(minutes int) (PreparationTime, error) {
	if minutes < MinPreparationMinutes {
		return 0, errs.NewValueIsOutOfRangeError("preparation time", minutes, MinPreparationMinutes, "unbounded")
	}
	if minutes%PreparationStepMinutes != 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"preparation time",
			fmt.Errorf("%d is not a multiple of %d", minutes, PreparationStepMinutes),
		)
	}
	return PreparationTime(minutes), nil
}

// DefaultPreparationTime returns the 20 minute default.
func DefaultPreparationTime() PreparationTime {
	return PreparationTime(DefaultPreparationMinutes)
}

func (p PreparationTime) Minutes() int {
	return int(p)
}
