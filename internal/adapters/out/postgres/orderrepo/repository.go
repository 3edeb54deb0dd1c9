package orderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its items and messages.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the mutable part of the order if the stored version still
// matches the one the aggregate was loaded with, then bumps the version.
// Items never change after checkout; new messages are appended.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"courier_id":       dto.CourierID,
			"status":           dto.Status,
			"delivery_fee":     dto.DeliveryFee,
			"total_price":      dto.TotalPrice,
			"preparation_time": dto.PreparationTime,
			"is_rated":         dto.IsRated,
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if len(dto.Messages) > 0 {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Messages).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves an order by ID. The order row is locked FOR UPDATE, which
// holds until the surrounding transaction ends.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.preloaded(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOnTheWay retrieves all orders with OnTheWay status, oldest first.
func (r *GormOrderRepository) GetAllOnTheWay(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Order("created_at").
		Find(&dtos, "status = ?", order.OnTheWay.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// HasActiveForCourier reports whether the courier already carries an order
// that is on the way.
func (r *GormOrderRepository) HasActiveForCourier(ctx context.Context, courierID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("courier_id = ? AND status = ?", courierID.Bytes(), order.OnTheWay.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		})
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewVersionIsInvalidError("order")
}
