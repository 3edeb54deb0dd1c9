package commands

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// MoveCouriersCommandHandler runs the proximity trigger for every order on
// the way.
//
// Each order is advanced in its own transaction with the order row locked, so
// a courier marking the delivery by hand at the same moment either wins the
// lock or finds the order already delivered. Orders that left ON_THE_WAY
// between listing and locking are skipped.
//
// Example:
//
//	handler := NewMoveCouriersCommandHandler(uowFactory, services.NewDeliveryTracker(), store, notifier, logger)
//	cmd := NewMoveCouriersCommand()
//
//	// Execute movement update
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("courier movement failed: %w", err)
//	}
//
//	// This would typically be called periodically by a scheduler
type MoveCouriersCommandHandler struct {
	uowFactory    UoWFactory
	tracker       services.DeliveryTracker
	trackingStore ports.TrackingStore
	notifier      ports.Notifier
	logger        *slog.Logger
}

// NewMoveCouriersCommandHandler creates a handler for courier movement operations.
func NewMoveCouriersCommandHandler(
	uowFactory UoWFactory,
	tracker services.DeliveryTracker,
	trackingStore ports.TrackingStore,
	notifier ports.Notifier,
	logger *slog.Logger,
) MoveCouriersCommandHandler {
	return MoveCouriersCommandHandler{
		uowFactory:    uowFactory,
		tracker:       tracker,
		trackingStore: trackingStore,
		notifier:      notifier,
		logger:        logger,
	}
}

// Handle advances every order currently on the way. A failure on one order
// does not stop the others; all failures are returned joined.
func (h *MoveCouriersCommandHandler) Handle(ctx context.Context, cmd MoveCouriersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.uowFactory.Create().OrderRepository().GetAllOnTheWay(ctx)
	if err != nil {
		return err
	}

	var errList []error
	for _, o := range orders {
		if ctx.Err() != nil {
			errList = append(errList, ctx.Err())
			break
		}

		if err = h.advance(ctx, o.ID()); err != nil {
			if errors.Is(err, errs.ErrVersionIsInvalid) || order.IsRefusal(err) {
				h.logger.DebugContext(ctx, "order changed concurrently, retrying next tick",
					"order_id", o.ID().String(), "error", err)
				continue
			}
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}

func (h *MoveCouriersCommandHandler) advance(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if o.Status() != order.OnTheWay || o.Courier() == nil {
		return nil
	}

	courierRepo := uow.CourierRepository()
	c, err := courierRepo.Get(ctx, *o.Courier())
	if err != nil {
		return err
	}

	delivered, err := h.tracker.Advance(o, c)
	if err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	if delivered {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !delivered {
		if err = h.trackingStore.Save(ctx, o.ID(), c.Location()); err != nil {
			h.logger.WarnContext(ctx, "failed to publish courier position",
				"order_id", o.ID().String(), "error", err)
		}
		return nil
	}

	if err = h.trackingStore.Delete(ctx, o.ID()); err != nil {
		h.logger.WarnContext(ctx, "failed to drop courier position",
			"order_id", o.ID().String(), "error", err)
	}

	h.logger.InfoContext(ctx, "order delivered by proximity trigger", "order_id", o.ID().String())
	h.notifier.Notify(ctx, clientEvent(ports.EventOrderDelivered, o))
	return nil
}
