package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// PaymentMethod is how the client pays the courier or the business.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

func (p PaymentMethod) Validate() error {
	if p != PaymentCash && p != PaymentTransfer {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(p)))
	}
	return nil
}

func (p PaymentMethod) String() string {
	return string(p)
}
