package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrAcceptOrderCommandIsNotConstructed = errors.New(
		"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
	)
)

// AcceptOrderCommand is the business accepting a pending order with its
// preparation estimate and, optionally, a revised delivery fee.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	preparationTime order.PreparationTime
	revisedFee      *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand validates the acceptance. A zero preparationMinutes
// selects the 20 minute default; a nil revisedFee keeps the quoted fee.
func NewAcceptOrderCommand(
	orderID kernel.UUID,
	preparationMinutes int,
	revisedFee *decimal.Decimal,
) (AcceptOrderCommand, error) {
	command := AcceptOrderCommand{
		preparationTime: order.DefaultPreparationTime(),
		guard:           guard.NewConstructorGuard(),
	}

	var prepErr error
	if preparationMinutes != 0 {
		command.preparationTime, prepErr = order.NewPreparationTime(preparationMinutes)
	}

	var feeErr error
	if revisedFee != nil {
		feeErr = validateFee(*revisedFee)
		fee := *revisedFee
		command.revisedFee = &fee
	}

	if err := errors.Join(orderID.Validate(), prepErr, feeErr); err != nil {
		return AcceptOrderCommand{}, err
	}

	command.orderID = orderID
	return command, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AcceptOrderCommand) PreparationTime() order.PreparationTime {
	return c.preparationTime
}

// RevisedFee is nil when the business keeps the fee quoted at checkout.
func (c AcceptOrderCommand) RevisedFee() *decimal.Decimal {
	return c.revisedFee
}

func validateFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%s is negative", fee))
	}
	return nil
}
