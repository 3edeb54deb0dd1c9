package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l Location) toDomain() (kernel.Location, error) {
	return kernel.NewLocation(l.Lat, l.Lng)
}

func locationFromDomain(l kernel.Location) Location {
	return Location{Lat: l.Lat(), Lng: l.Lng()}
}

type Rating struct {
	Average string `json:"average"`
	Count   int    `json:"count"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type NewBusiness struct {
	Name             string          `json:"name"`
	Location         Location        `json:"location"`
	FixedDeliveryFee decimal.Decimal `json:"fixed_delivery_fee"`
}

type NewCourier struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

type CourierReview struct {
	Decision string `json:"decision"`
}

type CourierAvailability struct {
	Online bool `json:"online"`
}

type Courier struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Location       Location `json:"location"`
	IsOnline       bool     `json:"is_online"`
	ApprovalStatus string   `json:"approval_status"`
	Rating         Rating   `json:"rating"`
}

func courierFromQuery(r queries.GetCouriersQueryResponse) Courier {
	return Courier{
		ID:             r.ID.String(),
		Name:           r.Name,
		Location:       locationFromDomain(r.Location),
		IsOnline:       r.IsOnline,
		ApprovalStatus: string(r.Approval),
		Rating:         Rating{Average: r.RatingAverage.StringFixed(2), Count: r.RatingCount},
	}
}

type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type NewOrder struct {
	ClientID         string      `json:"client_id"`
	BusinessID       string      `json:"business_id"`
	Items            []OrderLine `json:"items"`
	DeliveryAddress  string      `json:"delivery_address"`
	DeliveryLocation Location    `json:"delivery_location"`
	PaymentMethod    string      `json:"payment_method"`
	SpecialNotes     string      `json:"special_notes"`
}

// OrderAcceptance carries the business estimate. Omitted fields keep the
// defaults: 20 minutes and the fee quoted at checkout.
type OrderAcceptance struct {
	PreparationMinutes int              `json:"preparation_minutes"`
	DeliveryFee        *decimal.Decimal `json:"delivery_fee"`
}

type CourierAction struct {
	CourierID string `json:"courier_id"`
}

type OrderRating struct {
	BusinessScore int  `json:"business_score"`
	CourierScore  *int `json:"courier_score"`
}

type OrderMessage struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}

type Order struct {
	ID                 string    `json:"id"`
	ClientID           string    `json:"client_id"`
	BusinessID         string    `json:"business_id"`
	CourierID          *string   `json:"courier_id"`
	Status             string    `json:"status"`
	DeliveryFee        string    `json:"delivery_fee"`
	TotalPrice         string    `json:"total_price"`
	DeliveryAddress    string    `json:"delivery_address"`
	PaymentMethod      string    `json:"payment_method"`
	PreparationMinutes *int      `json:"preparation_minutes"`
	IsRated            bool      `json:"is_rated"`
	CreatedAt          time.Time `json:"created_at"`
}

func orderFromQuery(r queries.GetOrdersQueryResponse) Order {
	return Order{
		ID:                 r.ID.String(),
		ClientID:           r.ClientID.String(),
		BusinessID:         r.BusinessID.String(),
		CourierID:          optionalID(r.CourierID),
		Status:             r.Status.String(),
		DeliveryFee:        r.DeliveryFee.StringFixed(2),
		TotalPrice:         r.TotalPrice.StringFixed(2),
		DeliveryAddress:    r.DeliveryAddress,
		PaymentMethod:      r.PaymentMethod.String(),
		PreparationMinutes: r.PreparationTime,
		IsRated:            r.IsRated,
		CreatedAt:          r.CreatedAt,
	}
}

type OrderTracking struct {
	OrderID         string    `json:"order_id"`
	Status          string    `json:"status"`
	Destination     Location  `json:"destination"`
	CourierID       *string   `json:"courier_id"`
	CourierLocation *Location `json:"courier_location"`
	PositionSource  string    `json:"position_source,omitempty"`
	DistanceMeters  *float64  `json:"distance_meters"`
}

func trackingFromQuery(r queries.GetOrderTrackingQueryResponse) OrderTracking {
	tracking := OrderTracking{
		OrderID:        r.OrderID.String(),
		Status:         r.Status.String(),
		Destination:    locationFromDomain(r.Destination),
		CourierID:      optionalID(r.CourierID),
		PositionSource: string(r.PositionSource),
		DistanceMeters: r.DistanceMeters,
	}
	if r.CourierLocation != nil {
		l := locationFromDomain(*r.CourierLocation)
		tracking.CourierLocation = &l
	}
	return tracking
}

type DeliveryFeeQuote struct {
	BusinessID string `json:"business_id"`
	Fee        string `json:"fee"`
	IsFixed    bool   `json:"is_fixed"`
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
