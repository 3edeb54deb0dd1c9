package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler joins the order with its courier and prefers
// the live position from the tracking store while the order is on the way.
type GetOrderTrackingQueryHandler struct {
	db            *gorm.DB
	trackingStore ports.TrackingStore
	logger        *slog.Logger
}

func NewGetOrderTrackingQueryHandler(
	db *gorm.DB,
	trackingStore ports.TrackingStore,
	logger *slog.Logger,
) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{
		db:            db,
		trackingStore: trackingStore,
		logger:        logger,
	}
}

func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	var (
		status                 string
		deliveryLat            float64
		deliveryLng            float64
		courierID              uuid.NullUUID
		courierLat, courierLng sql.NullFloat64
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.status,
			o.delivery_lat,
			o.delivery_lng,
			o.courier_id,
			c.location_lat,
			c.location_lng
		FROM orders o
		LEFT JOIN couriers c ON c.id = o.courier_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&status, &deliveryLat, &deliveryLng, &courierID, &courierLat, &courierLng)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderTrackingQueryResponse{}, err
	}

	resp := GetOrderTrackingQueryResponse{OrderID: query.OrderID()}

	if resp.Status, err = order.ParseStatus(status); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	if resp.Destination, err = kernel.NewLocation(deliveryLat, deliveryLng); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	if !courierID.Valid {
		return resp, nil
	}

	cID, err := kernel.UUIDFromBytes(courierID.UUID[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	resp.CourierID = &cID

	if resp.Status == order.OnTheWay {
		position, ok, storeErr := h.trackingStore.Get(ctx, query.OrderID())
		switch {
		case storeErr != nil:
			h.logger.WarnContext(ctx, "live position unavailable, using courier record",
				"order_id", query.OrderID().String(), "error", storeErr)
		case ok:
			h.setCourierLocation(&resp, position, PositionLive)
			return resp, nil
		}
	}

	if courierLat.Valid && courierLng.Valid {
		position, locErr := kernel.NewLocation(courierLat.Float64, courierLng.Float64)
		if locErr != nil {
			return GetOrderTrackingQueryResponse{}, locErr
		}
		h.setCourierLocation(&resp, position, PositionStored)
	}

	return resp, nil
}

func (h GetOrderTrackingQueryHandler) setCourierLocation(
	resp *GetOrderTrackingQueryResponse,
	position kernel.Location,
	source PositionSource,
) {
	resp.CourierLocation = &position
	resp.PositionSource = source

	if km, err := position.DistanceKm(resp.Destination); err == nil {
		meters := km * 1000
		resp.DistanceMeters = &meters
	}
}
