package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// MarkDeliveredCommandHandler lets the assigned courier complete the delivery
// by hand, ahead of the proximity trigger.
type MarkDeliveredCommandHandler struct {
	uowFactory    OrderUoWFactory
	trackingStore ports.TrackingStore
	notifier      ports.Notifier
	logger        *slog.Logger
}

func NewMarkDeliveredCommandHandler(
	uowFactory OrderUoWFactory,
	trackingStore ports.TrackingStore,
	notifier ports.Notifier,
	logger *slog.Logger,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory:    uowFactory,
		trackingStore: trackingStore,
		notifier:      notifier,
		logger:        logger,
	}
}

func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd CourierOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if o.Courier() != nil && !o.Courier().IsEqual(cmd.CourierID()) {
			return order.NewTransitionRefusedErrorWithReason(
				order.OperationDeliver, o.Status(), "order is assigned to another courier")
		}
		return o.Deliver()
	})
	if err != nil {
		return err
	}

	if err = h.trackingStore.Delete(ctx, o.ID()); err != nil {
		h.logger.WarnContext(ctx, "failed to drop courier position",
			"order_id", o.ID().String(), "error", err)
	}

	h.notifier.Notify(ctx, clientEvent(ports.EventOrderDelivered, o))
	return nil
}
