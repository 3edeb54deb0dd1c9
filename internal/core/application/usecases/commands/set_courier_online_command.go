package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrSetCourierOnlineCommandIsNotConstructed = errors.New(
		"SetCourierOnlineCommand must be created via NewSetCourierOnlineCommand constructor",
	)
)

// SetCourierOnlineCommand toggles whether a courier takes deliveries.
type SetCourierOnlineCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	online    bool

	guard guard.ConstructorGuard
}

func NewSetCourierOnlineCommand(courierID kernel.UUID, online bool) (SetCourierOnlineCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierOnlineCommand{}, err
	}

	return SetCourierOnlineCommand{
		courierID: courierID,
		online:    online,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetCourierOnlineCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierOnlineCommandIsNotConstructed)
}

func (c SetCourierOnlineCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c SetCourierOnlineCommand) Online() bool {
	return c.online
}
