package business

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrBusinessIsNotConstructed = errors.New("Business must be created via NewBusiness constructor")
)

// Business is a restaurant or shop that receives orders. Its fixed delivery
// fee overrides distance pricing when positive.
type Business struct {
	id               kernel.UUID
	name             string
	location         kernel.Location
	fixedDeliveryFee decimal.Decimal
	open             bool
	rating           kernel.Rating
	guard            guard.ConstructorGuard
}

// NewBusiness registers an open business with no rating yet. A zero fixed
// fee means distance pricing.
func NewBusiness(id kernel.UUID, name string, location kernel.Location, fixedDeliveryFee decimal.Decimal) (*Business, error) {
	return RestoreBusiness(id, name, location, fixedDeliveryFee, true, kernel.Rating{})
}

func RestoreBusiness(
	id kernel.UUID,
	name string,
	location kernel.Location,
	fixedDeliveryFee decimal.Decimal,
	open bool,
	rating kernel.Rating,
) (*Business, error) {
	b := &Business{
		open:   open,
		rating: rating,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setLocation(location),
		b.setFixedDeliveryFee(fixedDeliveryFee),
	); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Business) Validate() error {
	if b == nil {
		return ErrBusinessIsNotConstructed
	}
	return b.guard.Validate(ErrBusinessIsNotConstructed)
}

func (b *Business) ID() kernel.UUID                   { return b.id }
func (b *Business) Name() string                      { return b.name }
func (b *Business) Location() kernel.Location         { return b.location }
func (b *Business) FixedDeliveryFee() decimal.Decimal { return b.fixedDeliveryFee }
func (b *Business) IsOpen() bool                      { return b.open }
func (b *Business) Rating() kernel.Rating             { return b.rating }

func (b *Business) SetOpen(open bool) {
	b.open = open
}

// RecordRating folds a client score (1..5) into the running average.
func (b *Business) RecordRating(score int) error {
	rating, err := b.rating.Add(score)
	if err != nil {
		return err
	}

	b.rating = rating
	return nil
}

func (b *Business) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Business) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	b.name = name
	return nil
}

func (b *Business) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	b.location = location
	return nil
}

func (b *Business) setFixedDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("fixed delivery fee", fmt.Errorf("%s is negative", fee))
	}
	b.fixedDeliveryFee = fee
	return nil
}
