// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetCouriersQueryIsNotConstructed = errors.New(
		"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
	)
)

// GetCouriersQuery retrieves couriers for monitoring and admin review.
//
// Example:
//
//	query := NewGetCouriersQuery(true)
//	handler := NewGetCouriersQueryHandler(db)
//
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve couriers: %w", err)
//	}
//
//	for _, courier := range couriers {
//	    fmt.Printf("Courier %s at %s\n", courier.Name, courier.Location)
//	}
type GetCouriersQuery struct {
	onlineOnly bool
	guard      guard.ConstructorGuard
}

// NewGetCouriersQuery creates a query over all couriers, or only the online
// ones when onlineOnly is set.
func NewGetCouriersQuery(onlineOnly bool) GetCouriersQuery {
	return GetCouriersQuery{
		onlineOnly: onlineOnly,
		guard:      guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCouriersQueryIsNotConstructed if validation fails.
func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

func (q GetCouriersQuery) OnlineOnly() bool {
	return q.onlineOnly
}

// GetCouriersQueryResponse represents courier information in the read model.
type GetCouriersQueryResponse struct {
	ID            kernel.UUID
	Name          string
	Location      kernel.Location
	IsOnline      bool
	Approval      courier.ApprovalStatus
	RatingAverage decimal.Decimal
	RatingCount   int
}
