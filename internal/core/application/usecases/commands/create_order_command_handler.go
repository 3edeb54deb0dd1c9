package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// ErrBusinessIsClosed is returned when ordering from a business that is not
// taking orders.
var ErrBusinessIsClosed = errors.New("business is closed")

// CreateOrderCommandHandler places a new order in PENDING status, pricing the
// delivery from the business config and notifying the business.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, services.NewDeliveryFeeCalculator(), notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory    UoWFactory
	feeCalculator services.DeliveryFeeCalculator
	notifier      ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	feeCalculator services.DeliveryFeeCalculator,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		feeCalculator: feeCalculator,
		notifier:      notifier,
	}
}

// Handle processes the order creation command in a single transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BusinessRepository().Get(ctx, cmd.BusinessID())
	if err != nil {
		return err
	}

	if !b.IsOpen() {
		return ErrBusinessIsClosed
	}

	fee := h.feeCalculator.Calculate(b.FixedDeliveryFee(), b.Location(), cmd.DeliveryLocation())

	newOrder, err := order.NewOrder(cmd.OrderID(), order.Checkout{
		ClientID:         cmd.ClientID(),
		BusinessID:       cmd.BusinessID(),
		Items:            cmd.Items(),
		DeliveryFee:      fee,
		DeliveryAddress:  cmd.DeliveryAddress(),
		DeliveryLocation: cmd.DeliveryLocation(),
		PaymentMethod:    cmd.PaymentMethod(),
		SpecialNotes:     cmd.SpecialNotes(),
	}, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, businessEvent(ports.EventOrderCreated, newOrder))
	return nil
}
