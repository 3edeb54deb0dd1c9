package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
		"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
	)
)

// PositionSource tells where a courier position came from.
type PositionSource string

const (
	// PositionLive is the last tick written to the tracking store.
	PositionLive PositionSource = "live"
	// PositionStored is the courier row, used when no live position exists.
	PositionStored PositionSource = "stored"
)

// GetOrderTrackingQuery returns what the client map shows for an order.
type GetOrderTrackingQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return GetOrderTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderTrackingQueryResponse carries the order status, its destination and,
// once a courier is assigned, where the courier is.
type GetOrderTrackingQueryResponse struct {
	OrderID         kernel.UUID
	Status          order.Status
	Destination     kernel.Location
	CourierID       *kernel.UUID
	CourierLocation *kernel.Location
	PositionSource  PositionSource
	DistanceMeters  *float64
}
