package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// TrackingStore keeps the live courier position of orders on the way.
type TrackingStore interface {
	// Save records the latest courier position for the order.
	Save(ctx context.Context, orderID kernel.UUID, position kernel.Location) error

	// Get returns the last recorded position. ok is false when nothing is
	// recorded or the entry expired.
	Get(ctx context.Context, orderID kernel.UUID) (position kernel.Location, ok bool, err error)

	// Delete drops the position once the order leaves ON_THE_WAY.
	Delete(ctx context.Context, orderID kernel.UUID) error
}
