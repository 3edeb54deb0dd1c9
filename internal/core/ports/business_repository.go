package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/business"
	"fooddelivery/internal/core/domain/model/kernel"
)

// BusinessRepository defines the persistence contract for business aggregates.
type BusinessRepository interface {
	Add(ctx context.Context, aggregate *business.Business) error
	Update(ctx context.Context, aggregate *business.Business) error
	Get(ctx context.Context, id kernel.UUID) (*business.Business, error)
}
