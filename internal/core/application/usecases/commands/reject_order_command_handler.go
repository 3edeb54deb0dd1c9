package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// RejectOrderCommandHandler closes a PENDING order on behalf of the business.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewRejectOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd OrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).Reject)
	if err != nil {
		return err
	}

	h.notifier.Notify(ctx, clientEvent(ports.EventOrderRejected, o))
	return nil
}
