package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// transitionOrder loads the order under lock, applies change and stores the
// result in one transaction. A refused change rolls back and is returned as is.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	change func(o *order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = change(o); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func newOrderEvent(eventType ports.EventType, o *order.Order, recipient ports.Role, recipientID *kernel.UUID) ports.OrderEvent {
	return ports.OrderEvent{
		Type:        eventType,
		OrderID:     o.ID(),
		Status:      o.Status(),
		Recipient:   recipient,
		RecipientID: recipientID,
		OccurredAt:  time.Now().UTC(),
	}
}

func clientEvent(eventType ports.EventType, o *order.Order) ports.OrderEvent {
	clientID := o.ClientID()
	return newOrderEvent(eventType, o, ports.RoleClient, &clientID)
}

func businessEvent(eventType ports.EventType, o *order.Order) ports.OrderEvent {
	businessID := o.BusinessID()
	return newOrderEvent(eventType, o, ports.RoleBusiness, &businessID)
}
