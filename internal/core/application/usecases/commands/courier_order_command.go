package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCourierOrderCommandIsNotConstructed = errors.New(
		"CourierOrderCommand must be created via NewCourierOrderCommand constructor",
	)
)

// CourierOrderCommand is a courier acting on an order: accepting the delivery
// or marking it delivered.
type CourierOrderCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCourierOrderCommand(orderID, courierID kernel.UUID) (CourierOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return CourierOrderCommand{}, err
	}

	return CourierOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CourierOrderCommand) Validate() error {
	return c.guard.Validate(ErrCourierOrderCommandIsNotConstructed)
}

func (c CourierOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CourierOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}
