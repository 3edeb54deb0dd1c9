package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDeliveryFeeQuoteQueryHandler reads the business pricing config and runs
// the fee calculator on it.
type GetDeliveryFeeQuoteQueryHandler struct {
	db            *gorm.DB
	feeCalculator services.DeliveryFeeCalculator
}

func NewGetDeliveryFeeQuoteQueryHandler(
	db *gorm.DB,
	feeCalculator services.DeliveryFeeCalculator,
) GetDeliveryFeeQuoteQueryHandler {
	return GetDeliveryFeeQuoteQueryHandler{
		db:            db,
		feeCalculator: feeCalculator,
	}
}

func (h GetDeliveryFeeQuoteQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryFeeQuoteQuery,
) (GetDeliveryFeeQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryFeeQuoteQueryResponse{}, err
	}

	var row struct {
		LocationLat      float64
		LocationLng      float64
		FixedDeliveryFee decimal.Decimal
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT location_lat, location_lng, fixed_delivery_fee
		FROM businesses
		WHERE id = ?
	`, query.BusinessID().Bytes()).Scan(&row)
	if result.Error != nil {
		return GetDeliveryFeeQuoteQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetDeliveryFeeQuoteQueryResponse{}, errs.NewObjectNotFoundError("business", query.BusinessID().String())
	}

	// a corrupt business location degrades to a zero fee like any invalid geometry
	origin, err := kernel.NewLocation(row.LocationLat, row.LocationLng)
	if err != nil {
		origin = kernel.Location{}
	}

	return GetDeliveryFeeQuoteQueryResponse{
		BusinessID: query.BusinessID(),
		Fee:        h.feeCalculator.Calculate(row.FixedDeliveryFee, origin, query.Destination()),
		IsFixed:    row.FixedDeliveryFee.IsPositive(),
	}, nil
}
