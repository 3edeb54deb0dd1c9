package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrSendOrderMessageCommandIsNotConstructed = errors.New(
		"SendOrderMessageCommand must be created via NewSendOrderMessageCommand constructor",
	)
	ErrMessageTextIsRequired = errs.NewValueIsRequiredError("message text")
)

// SendOrderMessageCommand is a quick message between two parties of an order.
type SendOrderMessageCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	messageID   kernel.UUID
	senderID    kernel.UUID
	recipientID kernel.UUID
	text        string

	guard guard.ConstructorGuard
}

func NewSendOrderMessageCommand(
	orderID, senderID, recipientID kernel.UUID,
	text string,
) (SendOrderMessageCommand, error) {
	var textErr error
	if text == "" {
		textErr = ErrMessageTextIsRequired
	}

	if err := errors.Join(
		orderID.Validate(),
		senderID.Validate(),
		recipientID.Validate(),
		textErr,
	); err != nil {
		return SendOrderMessageCommand{}, err
	}

	return SendOrderMessageCommand{
		orderID:     orderID,
		messageID:   kernel.NewUUID(),
		senderID:    senderID,
		recipientID: recipientID,
		text:        text,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SendOrderMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendOrderMessageCommandIsNotConstructed)
}

func (c SendOrderMessageCommand) OrderID() kernel.UUID     { return c.orderID }
func (c SendOrderMessageCommand) MessageID() kernel.UUID   { return c.messageID }
func (c SendOrderMessageCommand) SenderID() kernel.UUID    { return c.senderID }
func (c SendOrderMessageCommand) RecipientID() kernel.UUID { return c.recipientID }
func (c SendOrderMessageCommand) Text() string             { return c.text }
