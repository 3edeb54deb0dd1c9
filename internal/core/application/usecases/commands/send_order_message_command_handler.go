package commands

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// SendOrderMessageCommandHandler appends a quick message to an active order
// and notifies the recipient. Sender and recipient must both be parties of
// the order: its client, its business or its courier.
type SendOrderMessageCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewSendOrderMessageCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) SendOrderMessageCommandHandler {
	return SendOrderMessageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h *SendOrderMessageCommandHandler) Handle(ctx context.Context, cmd SendOrderMessageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var recipient ports.Role
	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if _, ok := partyRole(o, cmd.SenderID()); !ok {
			return errs.NewValueIsInvalidErrorWithCause("sender",
				fmt.Errorf("%s is not a party of order %s", cmd.SenderID(), o.ID()))
		}

		role, ok := partyRole(o, cmd.RecipientID())
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause("recipient",
				fmt.Errorf("%s is not a party of order %s", cmd.RecipientID(), o.ID()))
		}
		recipient = role

		message, msgErr := order.NewMessage(
			cmd.MessageID(), cmd.SenderID(), cmd.RecipientID(), cmd.Text(), time.Now().UTC())
		if msgErr != nil {
			return msgErr
		}

		return o.AddMessage(message)
	})
	if err != nil {
		return err
	}

	recipientID := cmd.RecipientID()
	h.notifier.Notify(ctx, newOrderEvent(ports.EventOrderMessage, o, recipient, &recipientID))
	return nil
}

func partyRole(o *order.Order, id kernel.UUID) (ports.Role, bool) {
	switch {
	case o.ClientID().IsEqual(id):
		return ports.RoleClient, true
	case o.BusinessID().IsEqual(id):
		return ports.RoleBusiness, true
	case o.Courier() != nil && o.Courier().IsEqual(id):
		return ports.RoleDelivery, true
	default:
		return "", false
	}
}
