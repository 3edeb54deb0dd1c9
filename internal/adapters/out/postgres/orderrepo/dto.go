// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and messages live in child tables keyed by the order id.
type OrderDTO struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	BusinessID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	CourierID       *uuid.UUID        `gorm:"type:uuid;index"`
	Status          string            `gorm:"type:varchar(32);not null;index"`
	DeliveryFee     decimal.Decimal   `gorm:"type:numeric(10,2);not null"`
	TotalPrice      decimal.Decimal   `gorm:"type:numeric(10,2);not null"`
	DeliveryAddress string            `gorm:"type:text;not null"`
	Delivery        LocationDTO       `gorm:"embedded;embeddedPrefix:delivery_"`
	PaymentMethod   string            `gorm:"type:varchar(16);not null"`
	SpecialNotes    string            `gorm:"type:text;not null;default:''"`
	PreparationTime *int              `gorm:"type:int"`
	IsRated         bool              `gorm:"not null;default:false"`
	CreatedAt       time.Time         `gorm:"type:timestamptz;not null"`
	Version         int64             `gorm:"not null;default:0"`
	Items           []OrderItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Messages        []OrderMessageDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents the embedded delivery coordinate within the order table.
type LocationDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

// OrderItemDTO is one line of the cart, kept in checkout order.
type OrderItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position   int             `gorm:"primaryKey"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	BusinessID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Quantity   int             `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderMessageDTO is a quick message exchanged on the order.
type OrderMessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null"`
	Text        string    `gorm:"type:text;not null"`
	IsRead      bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

func (OrderMessageDTO) TableName() string {
	return "order_messages"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var courierID *uuid.UUID
	if id := o.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var preparationTime *int
	if p := o.PreparationTime(); p != nil {
		minutes := p.Minutes()
		preparationTime = &minutes
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    orderID,
			Position:   i,
			ProductID:  item.ProductID().Bytes(),
			BusinessID: item.BusinessID().Bytes(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice(),
			Quantity:   item.Quantity(),
		})
	}

	return OrderDTO{
		ID:              orderID,
		ClientID:        o.ClientID().Bytes(),
		BusinessID:      o.BusinessID().Bytes(),
		CourierID:       courierID,
		Status:          o.Status().String(),
		DeliveryFee:     o.DeliveryFee(),
		TotalPrice:      o.TotalPrice(),
		DeliveryAddress: o.DeliveryAddress(),
		Delivery: LocationDTO{
			Lat: o.DeliveryLocation().Lat(),
			Lng: o.DeliveryLocation().Lng(),
		},
		PaymentMethod:   o.PaymentMethod().String(),
		SpecialNotes:    o.SpecialNotes(),
		PreparationTime: preparationTime,
		IsRated:         o.IsRated(),
		CreatedAt:       o.CreatedAt(),
		Version:         o.Version(),
		Items:           items,
		Messages:        messagesFromDomain(orderID, o.Messages()),
	}
}

func messagesFromDomain(orderID uuid.UUID, messages []order.Message) []OrderMessageDTO {
	dtos := make([]OrderMessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, OrderMessageDTO{
			ID:          m.ID().Bytes(),
			OrderID:     orderID,
			SenderID:    m.SenderID().Bytes(),
			RecipientID: m.RecipientID().Bytes(),
			Text:        m.Text(),
			IsRead:      m.IsRead(),
			CreatedAt:   m.CreatedAt(),
		})
	}
	return dtos
}

// toDomain converts a database DTO to an order domain aggregate.
// Every invariant is re-checked by RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var preparationTime *order.PreparationTime
	if dto.PreparationTime != nil {
		p, prepErr := order.NewPreparationTime(*dto.PreparationTime)
		if prepErr != nil {
			return nil, prepErr
		}
		preparationTime = &p
	}

	location, err := kernel.NewLocation(dto.Delivery.Lat, dto.Delivery.Lng)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	messages, err := messagesToDomain(dto.Messages)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		Checkout: order.Checkout{
			ClientID:         clientID,
			BusinessID:       businessID,
			Items:            items,
			DeliveryFee:      dto.DeliveryFee,
			DeliveryAddress:  dto.DeliveryAddress,
			DeliveryLocation: location,
			PaymentMethod:    order.PaymentMethod(dto.PaymentMethod),
			SpecialNotes:     dto.SpecialNotes,
		},
		ID:              id,
		CourierID:       courierID,
		Status:          status,
		PreparationTime: preparationTime,
		Messages:        messages,
		Rated:           dto.IsRated,
		CreatedAt:       dto.CreatedAt,
		Version:         dto.Version,
	})
}

func itemsToDomain(dtos []OrderItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(productID, businessID, dto.Name, dto.UnitPrice, dto.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func messagesToDomain(dtos []OrderMessageDTO) ([]order.Message, error) {
	messages := make([]order.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := messageToDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func messageToDomain(dto OrderMessageDTO) (order.Message, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	senderID, senderErr := kernel.UUIDFromBytes(dto.SenderID[:])
	recipientID, recipientErr := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err := errors.Join(idErr, senderErr, recipientErr); err != nil {
		return order.Message{}, err
	}

	return order.RestoreMessage(id, senderID, recipientID, dto.Text, dto.CreatedAt, dto.IsRead)
}
