package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrReviewCourierCommandIsNotConstructed = errors.New(
		"ReviewCourierCommand must be created via NewReviewCourierCommand constructor",
	)
)

// ReviewCourierCommand records the admin decision on a courier application.
type ReviewCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	decision  courier.ApprovalStatus

	guard guard.ConstructorGuard
}

func NewReviewCourierCommand(courierID kernel.UUID, decision courier.ApprovalStatus) (ReviewCourierCommand, error) {
	command := ReviewCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	var decisionErr error
	if !decision.IsDecision() {
		decisionErr = errs.NewValueIsInvalidErrorWithCause(
			"decision",
			fmt.Errorf("%q is not APPROVED or REJECTED", decision.String()),
		)
	}

	if err := errors.Join(courierID.Validate(), decisionErr); err != nil {
		return ReviewCourierCommand{}, err
	}

	command.courierID = courierID
	command.decision = decision
	return command, nil
}

func (c ReviewCourierCommand) Validate() error {
	return c.guard.Validate(ErrReviewCourierCommandIsNotConstructed)
}

func (c ReviewCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c ReviewCourierCommand) Decision() courier.ApprovalStatus {
	return c.decision
}
