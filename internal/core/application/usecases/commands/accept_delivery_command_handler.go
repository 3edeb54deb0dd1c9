package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// AcceptDeliveryCommandHandler lets an online, approved courier claim a ready
// order. The order goes ON_THE_WAY, the courier position is published to the
// tracking store and the client is told.
//
// Two couriers racing for the same order are serialised by the row lock:
// the second one sees a courier already assigned and is refused. A courier
// carries one order at a time; the courier row lock serialises its own
// concurrent pickups.
type AcceptDeliveryCommandHandler struct {
	uowFactory    UoWFactory
	trackingStore ports.TrackingStore
	notifier      ports.Notifier
	logger        *slog.Logger
}

func NewAcceptDeliveryCommandHandler(
	uowFactory UoWFactory,
	trackingStore ports.TrackingStore,
	notifier ports.Notifier,
	logger *slog.Logger,
) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory:    uowFactory,
		trackingStore: trackingStore,
		notifier:      notifier,
		logger:        logger,
	}
}

func (h *AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd CourierOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	c, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = c.CanAcceptDelivery(); err != nil {
		return order.NewTransitionRefusedErrorWithReason(order.OperationPickUp, o.Status(), err.Error())
	}

	busy, err := orderRepo.HasActiveForCourier(ctx, c.ID())
	if err != nil {
		return err
	}
	if busy {
		return order.NewTransitionRefusedErrorWithReason(
			order.OperationPickUp, o.Status(), courier.ErrCourierIsBusy.Error())
	}

	if err = o.PickUp(c.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.trackingStore.Save(ctx, o.ID(), c.Location()); err != nil {
		h.logger.WarnContext(ctx, "failed to publish courier position",
			"order_id", o.ID().String(), "error", err)
	}

	h.notifier.Notify(ctx, clientEvent(ports.EventOrderOnTheWay, o))
	return nil
}
