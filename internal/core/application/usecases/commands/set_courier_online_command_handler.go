package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
)

// SetCourierOnlineCommandHandler toggles courier availability. Going online
// fails with courier.ErrCourierIsNotApproved until the application is approved.
type SetCourierOnlineCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewSetCourierOnlineCommandHandler(uowFactory CourierUoWFactory) SetCourierOnlineCommandHandler {
	return SetCourierOnlineCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetCourierOnlineCommandHandler) Handle(ctx context.Context, cmd SetCourierOnlineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return changeCourier(ctx, h.uowFactory, cmd.CourierID(), func(c *courier.Courier) error {
		return c.SetOnline(cmd.Online())
	})
}
