package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultOrdersLimit = 50
	MaxOrdersLimit     = 200
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// OrdersFilter narrows the order list. Nil fields do not filter; a zero
// Limit means DefaultOrdersLimit.
type OrdersFilter struct {
	BusinessID *kernel.UUID
	ClientID   *kernel.UUID
	CourierID  *kernel.UUID
	Status     *order.Status
	Limit      int
}

// GetOrdersQuery lists orders newest first. Businesses poll it for incoming
// orders, clients for their history and couriers for their deliveries.
//
// Example:
//
//	pending := order.Pending
//	query, err := NewGetOrdersQuery(OrdersFilter{BusinessID: &businessID, Status: &pending})
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	filter OrdersFilter
	guard  guard.ConstructorGuard
}

func NewGetOrdersQuery(filter OrdersFilter) (GetOrdersQuery, error) {
	var errList []error
	for _, id := range []*kernel.UUID{filter.BusinessID, filter.ClientID, filter.CourierID} {
		if id != nil {
			errList = append(errList, id.Validate())
		}
	}
	if filter.Status != nil {
		errList = append(errList, filter.Status.Validate())
	}
	if filter.Limit < 0 || filter.Limit > MaxOrdersLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 0, MaxOrdersLimit))
	}
	if err := errors.Join(errList...); err != nil {
		return GetOrdersQuery{}, err
	}

	if filter.Limit == 0 {
		filter.Limit = DefaultOrdersLimit
	}

	return GetOrdersQuery{
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Filter() OrdersFilter {
	return q.filter
}

// GetOrdersQueryResponse is the order summary shown in lists.
type GetOrdersQueryResponse struct {
	ID              kernel.UUID
	ClientID        kernel.UUID
	BusinessID      kernel.UUID
	CourierID       *kernel.UUID
	Status          order.Status
	DeliveryFee     decimal.Decimal
	TotalPrice      decimal.Decimal
	DeliveryAddress string
	PaymentMethod   order.PaymentMethod
	PreparationTime *int
	IsRated         bool
	CreatedAt       time.Time
}
