package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrRateOrderCommandIsNotConstructed = errors.New(
		"RateOrderCommand must be created via NewRateOrderCommand constructor",
	)
)

// RateOrderCommand is the client scoring a delivered order. The business
// score is mandatory, the courier score optional.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	businessScore int
	courierScore  *int

	guard guard.ConstructorGuard
}

func NewRateOrderCommand(orderID kernel.UUID, businessScore int, courierScore *int) (RateOrderCommand, error) {
	command := RateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	var courierErr error
	if courierScore != nil {
		score := *courierScore
		courierErr = validateScore("courier score", score)
		command.courierScore = &score
	}

	if err := errors.Join(
		orderID.Validate(),
		validateScore("business score", businessScore),
		courierErr,
	); err != nil {
		return RateOrderCommand{}, err
	}

	command.orderID = orderID
	command.businessScore = businessScore
	return command, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RateOrderCommand) BusinessScore() int {
	return c.businessScore
}

// CourierScore is nil when the client did not score the courier.
func (c RateOrderCommand) CourierScore() *int {
	return c.courierScore
}

func validateScore(param string, score int) error {
	if score < kernel.MinRatingScore || score > kernel.MaxRatingScore {
		return errs.NewValueIsOutOfRangeError(param, score, kernel.MinRatingScore, kernel.MaxRatingScore)
	}
	return nil
}
