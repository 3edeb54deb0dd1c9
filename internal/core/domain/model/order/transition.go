package order

import (
	"errors"
	"fmt"
)

// ErrTransitionRefused classifies every refused operation. A refusal leaves
// the order untouched and is safe to report to the user; it is expected when
// two actors race on the same order.
var ErrTransitionRefused = errors.New("transition refused")

// Operation names an order lifecycle operation.
type Operation string

const (
	OperationAccept    Operation = "accept"
	OperationReject    Operation = "reject"
	OperationMarkReady Operation = "mark ready"
	OperationPickUp    Operation = "pick up"
	OperationDeliver   Operation = "deliver"
	OperationCancel    Operation = "cancel"
	OperationRate      Operation = "rate"
	OperationMessage   Operation = "message"
)

// TransitionRefusedError tells which operation was refused and why.
type TransitionRefusedError struct {
	Operation Operation
	Status    Status
	Reason    string
}

func NewTransitionRefusedError(op Operation, status Status) *TransitionRefusedError {
	return &TransitionRefusedError{
		Operation: op,
		Status:    status,
		Reason:    fmt.Sprintf("%s is not a valid status to %s", status, op),
	}
}

func NewTransitionRefusedErrorWithReason(op Operation, status Status, reason string) *TransitionRefusedError {
	return &TransitionRefusedError{Operation: op, Status: status, Reason: reason}
}

func (e *TransitionRefusedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTransitionRefused, e.Reason)
}

func (e *TransitionRefusedError) Unwrap() error {
	return ErrTransitionRefused
}

// IsRefusal reports whether err is a refused transition.
func IsRefusal(err error) bool {
	return errors.Is(err, ErrTransitionRefused)
}
