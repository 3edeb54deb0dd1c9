package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/business"
)

// CreateBusinessCommandHandler persists a new open business.
type CreateBusinessCommandHandler struct {
	uowFactory BusinessUoWFactory
}

func NewCreateBusinessCommandHandler(uowFactory BusinessUoWFactory) CreateBusinessCommandHandler {
	return CreateBusinessCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateBusinessCommandHandler) Handle(ctx context.Context, cmd CreateBusinessCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	b, err := business.NewBusiness(cmd.BusinessID(), cmd.Name(), cmd.Location(), cmd.FixedDeliveryFee())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BusinessRepository().Add(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
