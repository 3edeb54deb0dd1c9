package commands

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

// MoveCouriersCommand triggers one tracking tick: every courier delivering an
// order moves toward the client, and orders whose courier arrived are
// delivered.
//
// Example:
//
//	cmd := NewMoveCouriersCommand()
//	handler := NewMoveCouriersCommandHandler(uowFactory, tracker, trackingStore, notifier, logger)
//
//	// Run every second from the scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("tracking tick failed: %v", err)
//	}
type MoveCouriersCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrMoveCouriersCommandIsNotConstructed = errors.New(
		"MoveCouriersCommand must be created via NewMoveCouriersCommand constructor",
	)
)

// NewMoveCouriersCommand creates a command to trigger courier movement updates.
// This is a parameterless command that processes all active deliveries.
func NewMoveCouriersCommand() MoveCouriersCommand {
	command := MoveCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrMoveCouriersCommandIsNotConstructed if validation fails.
func (c *MoveCouriersCommand) Validate() error {
	return c.guard.Validate(ErrMoveCouriersCommandIsNotConstructed)
}
