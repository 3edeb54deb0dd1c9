package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateBusinessCommandIsNotConstructed = errors.New(
		"CreateBusinessCommand must be created via NewCreateBusinessCommand constructor",
	)
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// CreateBusinessCommand registers a business that can receive orders.
//
// Example:
//
//	location, _ := kernel.NewLocation(19.4300, -99.1300)
//	cmd, err := NewCreateBusinessCommand(kernel.NewUUID(), "Tacos El Güero", location, decimal.Zero)
//	if err != nil {
//	    return fmt.Errorf("invalid business data: %w", err)
//	}
type CreateBusinessCommand struct { //nolint:recvcheck //using for validation
	businessID       kernel.UUID
	name             string
	location         kernel.Location
	fixedDeliveryFee decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateBusinessCommand validates the new business data. A zero fixed fee
// selects distance pricing.
func NewCreateBusinessCommand(
	businessID kernel.UUID,
	name string,
	location kernel.Location,
	fixedDeliveryFee decimal.Decimal,
) (CreateBusinessCommand, error) {
	command := CreateBusinessCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBusinessID(businessID),
		command.setName(name),
		command.setLocation(location),
		command.setFixedDeliveryFee(fixedDeliveryFee),
	); err != nil {
		return CreateBusinessCommand{}, err
	}

	return command, nil
}

func (c CreateBusinessCommand) Validate() error {
	return c.guard.Validate(ErrCreateBusinessCommandIsNotConstructed)
}

func (c CreateBusinessCommand) BusinessID() kernel.UUID {
	return c.businessID
}

func (c CreateBusinessCommand) Name() string {
	return c.name
}

func (c CreateBusinessCommand) Location() kernel.Location {
	return c.location
}

func (c CreateBusinessCommand) FixedDeliveryFee() decimal.Decimal {
	return c.fixedDeliveryFee
}

func (c *CreateBusinessCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.businessID = id
	return nil
}

func (c *CreateBusinessCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateBusinessCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *CreateBusinessCommand) setFixedDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("fixed delivery fee", fmt.Errorf("%s is negative", fee))
	}
	c.fixedDeliveryFee = fee
	return nil
}
