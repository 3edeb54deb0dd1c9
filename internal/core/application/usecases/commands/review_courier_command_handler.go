package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// ReviewCourierCommandHandler approves or rejects a courier application.
type ReviewCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewReviewCourierCommandHandler(uowFactory CourierUoWFactory) ReviewCourierCommandHandler {
	return ReviewCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ReviewCourierCommandHandler) Handle(ctx context.Context, cmd ReviewCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return changeCourier(ctx, h.uowFactory, cmd.CourierID(), func(c *courier.Courier) error {
		return c.Review(cmd.Decision())
	})
}

// changeCourier loads the courier under lock, applies change and stores it.
func changeCourier(
	ctx context.Context,
	uowFactory CourierUoWFactory,
	courierID kernel.UUID,
	change func(c *courier.Courier) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	c, err := courierRepo.Get(ctx, courierID)
	if err != nil {
		return err
	}

	if err = change(c); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
