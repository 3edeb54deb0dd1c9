package queries

import (
	"context"
	"database/sql"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders straight from the orders table.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle returns the orders matching the filter, newest first.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	stmt := h.db.WithContext(ctx).
		Table("orders").
		Select(`id, client_id, business_id, courier_id, status, delivery_fee, total_price,
			delivery_address, payment_method, preparation_time, is_rated, created_at`)

	if filter.BusinessID != nil {
		stmt = stmt.Where("business_id = ?", filter.BusinessID.Bytes())
	}
	if filter.ClientID != nil {
		stmt = stmt.Where("client_id = ?", filter.ClientID.Bytes())
	}
	if filter.CourierID != nil {
		stmt = stmt.Where("courier_id = ?", filter.CourierID.Bytes())
	}
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", filter.Status.String())
	}

	rows, err := stmt.Order("created_at DESC").Limit(filter.Limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp                     GetOrdersQueryResponse
			id, clientID, businessID uuid.UUID
			courierID                uuid.NullUUID
			status, paymentMethod    string
			preparationTime          sql.NullInt32
		)

		err = rows.Scan(
			&id,
			&clientID,
			&businessID,
			&courierID,
			&status,
			&resp.DeliveryFee,
			&resp.TotalPrice,
			&resp.DeliveryAddress,
			&paymentMethod,
			&preparationTime,
			&resp.IsRated,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
			return nil, err
		}
		if resp.BusinessID, err = kernel.UUIDFromBytes(businessID[:]); err != nil {
			return nil, err
		}
		if courierID.Valid {
			cID, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CourierID = &cID
		}
		if resp.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if preparationTime.Valid {
			minutes := int(preparationTime.Int32)
			resp.PreparationTime = &minutes
		}
		resp.PaymentMethod = order.PaymentMethod(paymentMethod)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
