package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")
)

// Checkout carries what the client submits when placing an order. The
// delivery fee is the one quoted by the fee calculator at checkout time.
type Checkout struct {
	ClientID         kernel.UUID
	BusinessID       kernel.UUID
	Items            []Item
	DeliveryFee      decimal.Decimal
	DeliveryAddress  string
	DeliveryLocation kernel.Location
	PaymentMethod    PaymentMethod
	SpecialNotes     string
}

// Snapshot is the full persisted state of an order, used to restore it from
// storage.
type Snapshot struct {
	Checkout

	ID              kernel.UUID
	CourierID       *kernel.UUID
	Status          Status
	PreparationTime *PreparationTime
	Messages        []Message
	Rated           bool
	CreatedAt       time.Time
	Version         int64
}

// Order is the aggregate root for one client-to-business transaction. All
// status changes go through its transition methods; a refused transition
// returns a TransitionRefusedError and leaves the order unchanged.
type Order struct {
	id         kernel.UUID
	clientID   kernel.UUID
	businessID kernel.UUID

	// courierID is set from pick up onwards
	courierID *kernel.UUID

	items       []Item
	deliveryFee decimal.Decimal

	// totalPrice is always items subtotal + delivery fee
	totalPrice decimal.Decimal

	status           Status
	deliveryAddress  string
	deliveryLocation kernel.Location
	paymentMethod    PaymentMethod
	specialNotes     string

	// preparationTime is set once the business accepts
	preparationTime *PreparationTime

	messages  []Message
	rated     bool
	createdAt time.Time

	// version is the optimistic concurrency token of the stored row
	version int64

	isConstructed bool
}

// NewOrder places a new order in Pending status.
func NewOrder(id kernel.UUID, checkout Checkout, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCheckout(checkout),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	return o, nil
}

// RestoreOrder rebuilds an order from storage and re-checks every invariant
// tying status, courier, preparation time and rating together.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCheckout(s.Checkout),
		o.setCreatedAt(s.CreatedAt),
		o.setStatus(s.Status, s.CourierID, s.PreparationTime, s.Rated),
		o.setMessages(s.Messages),
		o.setVersion(s.Version),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                   { return o.id }
func (o *Order) ClientID() kernel.UUID             { return o.clientID }
func (o *Order) BusinessID() kernel.UUID           { return o.businessID }
func (o *Order) Courier() *kernel.UUID             { return o.courierID }
func (o *Order) DeliveryFee() decimal.Decimal      { return o.deliveryFee }
func (o *Order) TotalPrice() decimal.Decimal       { return o.totalPrice }
func (o *Order) Status() Status                    { return o.status }
func (o *Order) DeliveryAddress() string           { return o.deliveryAddress }
func (o *Order) DeliveryLocation() kernel.Location { return o.deliveryLocation }
func (o *Order) PaymentMethod() PaymentMethod      { return o.paymentMethod }
func (o *Order) SpecialNotes() string              { return o.specialNotes }
func (o *Order) PreparationTime() *PreparationTime { return o.preparationTime }
func (o *Order) IsRated() bool                     { return o.rated }
func (o *Order) CreatedAt() time.Time              { return o.createdAt }
func (o *Order) Version() int64                    { return o.version }

func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) Messages() []Message {
	out := make([]Message, len(o.messages))
	copy(out, o.messages)
	return out
}

// Subtotal is the sum of all line totals.
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Accept moves a Pending order into preparation with the business estimate.
// A non-nil revisedFee replaces the fee quoted at checkout and the total is
// re-derived. Accepting twice is refused the second time.
func (o *Order) Accept(preparationTime PreparationTime, revisedFee *decimal.Decimal) error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	if _, err = NewPreparationTime(preparationTime.Minutes()); err != nil {
		return err
	}

	fee := o.deliveryFee
	if revisedFee != nil {
		if err = validateDeliveryFee(*revisedFee); err != nil {
			return err
		}
		fee = roundMoney(*revisedFee)
	}

	o.status = newStatus
	o.preparationTime = &preparationTime
	o.deliveryFee = fee
	o.recalculateTotal()
	return nil
}

// Reject closes a Pending order.
func (o *Order) Reject() error {
	return o.apply(o.status.Reject)
}

// MarkReady flags an order in preparation as ready for pickup.
func (o *Order) MarkReady() error {
	return o.apply(o.status.MarkReady)
}

// PickUp assigns the courier and puts the order on the way. The order must
// be ready for pickup and not yet claimed by another courier.
func (o *Order) PickUp(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return NewTransitionRefusedErrorWithReason(OperationPickUp, o.status, "order already has a courier assigned")
	}

	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// Deliver completes an order that is on the way.
func (o *Order) Deliver() error {
	return o.apply(o.status.Deliver)
}

// Cancel aborts an order before it leaves the business.
func (o *Order) Cancel() error {
	return o.apply(o.status.Cancel)
}

// Rate flags a delivered order as rated. It succeeds once.
func (o *Order) Rate() error {
	if o.status != Delivered {
		return NewTransitionRefusedError(OperationRate, o.status)
	}

	if o.rated {
		return NewTransitionRefusedErrorWithReason(OperationRate, o.status, "order is already rated")
	}

	o.rated = true
	return nil
}

// AddMessage appends a quick message while the order is still active.
func (o *Order) AddMessage(message Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return NewTransitionRefusedError(OperationMessage, o.status)
	}

	o.messages = append(o.messages, message)
	return nil
}

func (o *Order) apply(transition func() (Status, error)) error {
	newStatus, err := transition()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) recalculateTotal() {
	o.totalPrice = o.Subtotal().Add(o.deliveryFee)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCheckout(c Checkout) error {
	var addressErr error
	if c.DeliveryAddress == "" {
		addressErr = errs.NewValueIsRequiredError("delivery address")
	}

	if err := errors.Join(
		c.ClientID.Validate(),
		c.BusinessID.Validate(),
		validateItems(c.Items, c.BusinessID),
		validateDeliveryFee(c.DeliveryFee),
		addressErr,
		c.DeliveryLocation.Validate(),
		c.PaymentMethod.Validate(),
	); err != nil {
		return err
	}

	o.clientID = c.ClientID
	o.businessID = c.BusinessID
	o.items = make([]Item, len(c.Items))
	copy(o.items, c.Items)
	o.deliveryFee = roundMoney(c.DeliveryFee)
	o.deliveryAddress = c.DeliveryAddress
	o.deliveryLocation = c.DeliveryLocation
	o.paymentMethod = c.PaymentMethod
	o.specialNotes = c.SpecialNotes
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setStatus(
	status Status,
	courierID *kernel.UUID,
	preparationTime *PreparationTime,
	rated bool,
) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}

	if err := validatePreparationTime(status, preparationTime); err != nil {
		return err
	}

	if rated && status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("rated", fmt.Errorf("%s order cannot be rated", status))
	}

	o.status = status
	o.courierID = courierID
	o.preparationTime = preparationTime
	o.rated = rated
	return nil
}

func (o *Order) setMessages(messages []Message) error {
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	o.messages = make([]Message, len(messages))
	copy(o.messages, messages)
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 0 {
		return errs.NewValueIsOutOfRangeError("version", version, 0, "unbounded")
	}
	o.version = version
	return nil
}

func validateItems(items []Item, businessID kernel.UUID) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.BusinessID().IsEqual(businessID) {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("product %s belongs to another business", item.ProductID()),
			)
		}
	}
	return nil
}

// MoneyPlaces is the number of decimals money is stored with.
const MoneyPlaces = 2

// roundMoney rounds half away from zero, the way NUMERIC columns do, so a
// total derived in memory matches the sum of its stored parts.
func roundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

func validateDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%s is negative", fee))
	}
	return nil
}

func validatePreparationTime(status Status, preparationTime *PreparationTime) error {
	if preparationTime != nil {
		if _, err := NewPreparationTime(preparationTime.Minutes()); err != nil {
			return err
		}
	}

	switch {
	case status.HasPassedPreparation() && preparationTime == nil:
		return errs.NewValueIsRequiredErrorWithCause(
			"preparation time",
			fmt.Errorf("%s order must have a preparation time", status),
		)
	case (status == Pending || status == Accepted || status == Rejected) && preparationTime != nil:
		return errs.NewValueIsInvalidErrorWithCause(
			"preparation time",
			fmt.Errorf("%s order cannot have a preparation time", status),
		)
	}
	return nil
}
