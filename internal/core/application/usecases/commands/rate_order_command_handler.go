package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// RateOrderCommandHandler records the client rating of a delivered order.
// The order is flagged as rated and the business (and courier, if scored)
// running averages are updated in the same transaction.
type RateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewRateOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns an order.ErrTransitionRefused error when the order is not
// delivered or was already rated.
func (h *RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) error {
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

	if err = o.Rate(); err != nil {
		return err
	}

	businessRepo := uow.BusinessRepository()
	b, err := businessRepo.Get(ctx, o.BusinessID())
	if err != nil {
		return err
	}

	if err = b.RecordRating(cmd.BusinessScore()); err != nil {
		return err
	}

	if err = businessRepo.Update(ctx, b); err != nil {
		return err
	}

	if score := cmd.CourierScore(); score != nil && o.Courier() != nil {
		courierRepo := uow.CourierRepository()
		c, courierErr := courierRepo.Get(ctx, *o.Courier())
		if courierErr != nil {
			return courierErr
		}

		if err = c.RecordRating(*score); err != nil {
			return err
		}

		if err = courierRepo.Update(ctx, c); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, businessEvent(ports.EventOrderRated, o))
	return nil
}
