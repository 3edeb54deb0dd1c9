package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is a
	// compare-and-swap on the version the aggregate was loaded with: if the
	// stored row moved on, nothing is written and an errs.ErrVersionIsInvalid
	// error is returned.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier. Inside a
	// transaction the row stays locked until commit or rollback.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllOnTheWay retrieves every order currently ON_THE_WAY, the only
	// status the tracking job acts on.
	GetAllOnTheWay(ctx context.Context) ([]*order.Order, error)

	// HasActiveForCourier reports whether the courier already has an order
	// ON_THE_WAY. A courier carries one order at a time.
	HasActiveForCourier(ctx context.Context, courierID kernel.UUID) (bool, error)
}
