package businessrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/business"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBusinessRepository implements BusinessRepository using GORM.
type GormBusinessRepository struct {
	db *gorm.DB
}

func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

func (r *GormBusinessRepository) Add(ctx context.Context, aggregate *business.Business) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update overwrites every column of the stored business.
func (r *GormBusinessRepository) Update(ctx context.Context, aggregate *business.Business) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BusinessDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("business", aggregate.ID().String())
	}
	return nil
}

// Get retrieves a business by ID. Concurrent ratings serialize on the row
// lock taken here.
func (r *GormBusinessRepository) Get(ctx context.Context, id kernel.UUID) (*business.Business, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BusinessDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("business", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
