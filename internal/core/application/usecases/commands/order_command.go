package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrOrderCommandIsNotConstructed = errors.New(
		"OrderCommand must be created via NewOrderCommand constructor",
	)
)

// OrderCommand targets a single order with no further input. It drives the
// reject, mark ready and cancel transitions.
type OrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewOrderCommand(orderID kernel.UUID) (OrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return OrderCommand{}, err
	}

	return OrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c OrderCommand) Validate() error {
	return c.guard.Validate(ErrOrderCommandIsNotConstructed)
}

func (c OrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
