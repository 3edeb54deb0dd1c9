package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one cart line frozen into the order: the product, its price at
// checkout time and the quantity.
type Item struct { //nolint:recvcheck //using for validation
	productID  kernel.UUID
	businessID kernel.UUID
	name       string
	unitPrice  decimal.Decimal
	quantity   int
	guard      guard.ConstructorGuard
}

func NewItem(
	productID kernel.UUID,
	businessID kernel.UUID,
	name string,
	unitPrice decimal.Decimal,
	quantity int,
) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductID(productID),
		item.setBusinessID(businessID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.UUID {
	return i.productID
}

func (i Item) BusinessID() kernel.UUID {
	return i.businessID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i Item) Quantity() int {
	return i.quantity
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *Item) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.businessID = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", price))
	}
	i.unitPrice = roundMoney(price)
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
