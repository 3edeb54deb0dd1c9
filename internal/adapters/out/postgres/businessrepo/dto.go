// Package businessrepo persists business aggregates with GORM.
package businessrepo

import (
	"fooddelivery/internal/core/domain/model/business"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessDTO represents the database structure for persisting business aggregates.
type BusinessDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Location         LocationDTO     `gorm:"embedded;embeddedPrefix:location_"`
	FixedDeliveryFee decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsOpen           bool            `gorm:"not null;default:true"`
	RatingAverage    decimal.Decimal `gorm:"type:numeric(3,2);not null"`
	RatingCount      int             `gorm:"not null"`
}

func (BusinessDTO) TableName() string {
	return "businesses"
}

type LocationDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

func fromDomain(b *business.Business) BusinessDTO {
	return BusinessDTO{
		ID:   b.ID().Bytes(),
		Name: b.Name(),
		Location: LocationDTO{
			Lat: b.Location().Lat(),
			Lng: b.Location().Lng(),
		},
		FixedDeliveryFee: b.FixedDeliveryFee(),
		IsOpen:           b.IsOpen(),
		RatingAverage:    b.Rating().Average(),
		RatingCount:      b.Rating().Count(),
	}
}

func toDomain(dto BusinessDTO) (*business.Business, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Lat, dto.Location.Lng)
	if err != nil {
		return nil, err
	}

	rating, err := kernel.NewRating(dto.RatingAverage, dto.RatingCount)
	if err != nil {
		return nil, err
	}

	return business.RestoreBusiness(id, dto.Name, loc, dto.FixedDeliveryFee, dto.IsOpen, rating)
}
