package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// EventType names what happened to an order.
type EventType string

const (
	EventOrderCreated   EventType = "order.created"
	EventOrderAccepted  EventType = "order.accepted"
	EventOrderRejected  EventType = "order.rejected"
	EventOrderReady     EventType = "order.ready"
	EventOrderOnTheWay  EventType = "order.on_the_way"
	EventOrderDelivered EventType = "order.delivered"
	EventOrderCancelled EventType = "order.cancelled"
	EventOrderRated     EventType = "order.rated"
	EventOrderMessage   EventType = "order.message"
)

// Role is the party an event is addressed to.
type Role string

const (
	RoleClient   Role = "client"
	RoleBusiness Role = "business"
	RoleDelivery Role = "delivery"
)

// OrderEvent is dispatched after a committed order change.
type OrderEvent struct {
	Type        EventType
	OrderID     kernel.UUID
	Status      order.Status
	Recipient   Role
	RecipientID *kernel.UUID
	OccurredAt  time.Time
}

// Notifier dispatches order events. Delivery is best effort: implementations
// log failures and never block the transition that caused the event.
type Notifier interface {
	Notify(ctx context.Context, event OrderEvent)
}
