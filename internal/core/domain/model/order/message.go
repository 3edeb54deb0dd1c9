package order

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Message is a quick message exchanged between the parties of an order.
type Message struct { //nolint:recvcheck //using for validation
	id          kernel.UUID
	senderID    kernel.UUID
	recipientID kernel.UUID
	text        string
	createdAt   time.Time
	isRead      bool
	guard       guard.ConstructorGuard
}

func NewMessage(id, senderID, recipientID kernel.UUID, text string, createdAt time.Time) (Message, error) {
	return RestoreMessage(id, senderID, recipientID, text, createdAt, false)
}

// RestoreMessage rebuilds a stored message.
func RestoreMessage(
	id, senderID, recipientID kernel.UUID,
	text string,
	createdAt time.Time,
	isRead bool,
) (Message, error) {
	var textErr error
	if text == "" {
		textErr = errs.NewValueIsRequiredError("message text")
	}
	var createdErr error
	if createdAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("message timestamp")
	}

	if err := errors.Join(
		id.Validate(),
		senderID.Validate(),
		recipientID.Validate(),
		textErr,
		createdErr,
	); err != nil {
		return Message{}, err
	}

	return Message{
		id:          id,
		senderID:    senderID,
		recipientID: recipientID,
		text:        text,
		createdAt:   createdAt,
		isRead:      isRead,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (m Message) Validate() error {
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m Message) ID() kernel.UUID          { return m.id }
func (m Message) SenderID() kernel.UUID    { return m.senderID }
func (m Message) RecipientID() kernel.UUID { return m.recipientID }
func (m Message) Text() string             { return m.text }
func (m Message) CreatedAt() time.Time     { return m.createdAt }
func (m Message) IsRead() bool             { return m.isRead }
