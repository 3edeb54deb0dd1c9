package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// CancelOrderCommandHandler aborts an order that has not left the business.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd OrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).Cancel)
	if err != nil {
		return err
	}

	h.notifier.Notify(ctx, businessEvent(ports.EventOrderCancelled, o))
	return nil
}
