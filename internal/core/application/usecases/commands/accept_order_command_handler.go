package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// AcceptOrderCommandHandler moves a PENDING order into preparation and tells
// the client.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns an order.ErrTransitionRefused error when the order is not
// pending, including when it was already accepted.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Accept(cmd.PreparationTime(), cmd.RevisedFee())
	})
	if err != nil {
		return err
	}

	h.notifier.Notify(ctx, clientEvent(ports.EventOrderAccepted, o))
	return nil
}
