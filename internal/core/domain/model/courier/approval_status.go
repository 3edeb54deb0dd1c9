package courier

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ApprovalStatus is the outcome of the admin review of a courier application.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// ParseApprovalStatus converts a stored or wire value to an ApprovalStatus.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	status := ApprovalStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s ApprovalStatus) Validate() error {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("approval status", fmt.Errorf("%q is not supported", string(s)))
	}
}

// IsDecision reports whether s is a valid review outcome.
func (s ApprovalStatus) IsDecision() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

func (s ApprovalStatus) String() string {
	return string(s)
}
