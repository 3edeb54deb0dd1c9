package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// MarkOrderReadyCommandHandler flags an order as ready for pickup. The client
// is told and the order is announced to couriers.
type MarkOrderReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewMarkOrderReadyCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h *MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd OrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).MarkReady)
	if err != nil {
		return err
	}

	h.notifier.Notify(ctx, clientEvent(ports.EventOrderReady, o))
	h.notifier.Notify(ctx, newOrderEvent(ports.EventOrderReady, o, ports.RoleDelivery, nil))
	return nil
}
