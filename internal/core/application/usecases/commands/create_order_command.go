package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressIsRequired = errs.NewValueIsRequiredError("delivery address")
	ErrItemsAreRequired  = errs.NewValueIsRequiredError("items")
)

// OrderLine is one cart entry submitted at checkout.
type OrderLine struct {
	ProductID kernel.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// CreateOrderCommand represents a client checkout at a single business.
// The delivery fee is not part of the command: it is quoted by the handler
// from the business pricing config.
//
// Example:
//
//	destination, _ := kernel.NewLocation(19.4350, -99.1400)
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), clientID, businessID,
//	    []OrderLine{{ProductID: productID, Name: "Tacos", UnitPrice: decimal.NewFromInt(45), Quantity: 2}},
//	    "Av. Juárez 10", destination, order.PaymentCash, "",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	clientID         kernel.UUID
	businessID       kernel.UUID
	items            []order.Item
	deliveryAddress  string
	deliveryLocation kernel.Location
	paymentMethod    order.PaymentMethod
	specialNotes     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Every line becomes an item of businessID; all validation errors are joined.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	businessID kernel.UUID,
	lines []OrderLine,
	deliveryAddress string,
	deliveryLocation kernel.Location,
	paymentMethod order.PaymentMethod,
	specialNotes string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		specialNotes: specialNotes,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setIDs(orderID, clientID, businessID),
		orderCommand.setItems(businessID, lines),
		orderCommand.setDeliveryAddress(deliveryAddress),
		orderCommand.setDeliveryLocation(deliveryLocation),
		orderCommand.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) ClientID() kernel.UUID   { return c.clientID }
func (c CreateOrderCommand) BusinessID() kernel.UUID { return c.businessID }

func (c CreateOrderCommand) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c CreateOrderCommand) DeliveryAddress() string            { return c.deliveryAddress }
func (c CreateOrderCommand) DeliveryLocation() kernel.Location  { return c.deliveryLocation }
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c CreateOrderCommand) SpecialNotes() string               { return c.specialNotes }

func (c *CreateOrderCommand) setIDs(orderID, clientID, businessID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), clientID.Validate(), businessID.Validate()); err != nil {
		return err
	}

	c.orderID = orderID
	c.clientID = clientID
	c.businessID = businessID
	return nil
}

func (c *CreateOrderCommand) setItems(businessID kernel.UUID, lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrItemsAreRequired
	}

	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(line.ProductID, businessID, line.Name, line.UnitPrice, line.Quantity)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	c.deliveryAddress = address
	return nil
}

func (c *CreateOrderCommand) setDeliveryLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.deliveryLocation = location
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
