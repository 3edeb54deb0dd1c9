// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name           string          `gorm:"type:varchar(255);not null"`
	Location       LocationDTO     `gorm:"embedded;embeddedPrefix:location_"`
	IsOnline       bool            `gorm:"not null;default:false"`
	ApprovalStatus string          `gorm:"type:varchar(16);not null"`
	RatingAverage  decimal.Decimal `gorm:"type:numeric(3,2);not null"`
	RatingCount    int             `gorm:"not null"`
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers" instead of "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO represents the embedded position within the courier table.
type LocationDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:   c.ID().Bytes(),
		Name: c.Name(),
		Location: LocationDTO{
			Lat: c.Location().Lat(),
			Lng: c.Location().Lng(),
		},
		IsOnline:       c.IsOnline(),
		ApprovalStatus: c.Approval().String(),
		RatingAverage:  c.Rating().Average(),
		RatingCount:    c.Rating().Count(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Lat, dto.Location.Lng)
	if err != nil {
		return nil, err
	}

	approval, err := courier.ParseApprovalStatus(dto.ApprovalStatus)
	if err != nil {
		return nil, err
	}

	rating, err := kernel.NewRating(dto.RatingAverage, dto.RatingCount)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, loc, dto.IsOnline, approval, rating)
}
