package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetDeliveryFeeQuoteQueryIsNotConstructed = errors.New(
		"GetDeliveryFeeQuoteQuery must be created via NewGetDeliveryFeeQuoteQuery constructor",
	)
)

// GetDeliveryFeeQuoteQuery prices a delivery for the cart preview. The
// destination is raw coordinates: out of range values quote 0.00 instead of
// failing, like the fee calculator does.
type GetDeliveryFeeQuoteQuery struct {
	businessID kernel.UUID
	lat        float64
	lng        float64
	guard      guard.ConstructorGuard
}

func NewGetDeliveryFeeQuoteQuery(businessID kernel.UUID, lat, lng float64) (GetDeliveryFeeQuoteQuery, error) {
	if err := businessID.Validate(); err != nil {
		return GetDeliveryFeeQuoteQuery{}, err
	}

	return GetDeliveryFeeQuoteQuery{
		businessID: businessID,
		lat:        lat,
		lng:        lng,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryFeeQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryFeeQuoteQueryIsNotConstructed)
}

func (q GetDeliveryFeeQuoteQuery) BusinessID() kernel.UUID {
	return q.businessID
}

// Destination returns the delivery location, or a zero Location when the
// coordinates are invalid.
func (q GetDeliveryFeeQuoteQuery) Destination() kernel.Location {
	location, err := kernel.NewLocation(q.lat, q.lng)
	if err != nil {
		return kernel.Location{}
	}
	return location
}

type GetDeliveryFeeQuoteQueryResponse struct {
	BusinessID kernel.UUID
	Fee        decimal.Decimal
	// IsFixed is true when the business flat fee applied.
	IsFixed bool
}
