package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCouriersQueryHandler retrieves courier information from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetCouriersQueryHandler creates a handler for courier retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetCouriersQueryHandler(db *gorm.DB) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{db: db}
}

// Handle executes the query and returns couriers sorted by name.
func (h GetCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetCouriersQuery,
) ([]GetCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			location_lat,
			location_lng,
			is_online,
			approval_status,
			rating_average,
			rating_count
		FROM couriers
		WHERE NOT @online_only OR is_online
		ORDER BY name
	`, map[string]any{"online_only": query.OnlineOnly()}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c GetCouriersQueryResponse
		var lat, lng float64
		var id uuid.UUID
		var approval string
		var average decimal.Decimal

		err = rows.Scan(
			&id,
			&c.Name,
			&lat,
			&lng,
			&c.IsOnline,
			&approval,
			&average,
			&c.RatingCount,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		c.ID = courierID

		location, locErr := kernel.NewLocation(lat, lng)
		if locErr != nil {
			return nil, locErr
		}
		c.Location = location

		status, statusErr := courier.ParseApprovalStatus(approval)
		if statusErr != nil {
			return nil, statusErr
		}
		c.Approval = status
		c.RatingAverage = average

		couriers = append(couriers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
