package courier

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// StepFraction is the share of the remaining way covered on each tracking tick.
	StepFraction = 0.1
	// ArrivalThresholdMeters is the haversine distance under which the courier
	// counts as arrived at the destination.
	ArrivalThresholdMeters = 10.0
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierIsNotApproved is returned when a courier without an approved
	// application tries to go online or take a delivery.
	ErrCourierIsNotApproved = errors.New("courier is not approved")
	// ErrCourierIsOffline is returned when an offline courier tries to take a delivery.
	ErrCourierIsOffline = errors.New("courier is offline")
	// ErrCourierIsBusy is returned when a courier already carrying an order
	// tries to take another one.
	ErrCourierIsBusy = errors.New("courier already has an order on the way")
)

// Courier represents a delivery partner.
// It is an aggregate root that manages courier identity, live position,
// availability and rating.
//
// Key responsibilities:
//   - Managing courier identity (ID, name)
//   - Tracking the live position while delivering
//   - Gating delivery acceptance on approval and online status
//   - Keeping the running rating average
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name and valid location
//   - New couriers are offline and pending approval
//   - Only approved couriers can go online; rejection forces offline
//   - Movement converges on the destination by StepFraction of the remaining way
//
// Example usage:
//
//	location, _ := kernel.NewLocation(19.4300, -99.1300)
//	courier, err := NewCourier(kernel.NewUUID(), "Juan Pérez", location)
//	if err != nil {
//	    // Handle construction error
//	}
//	// Courier waits for an admin review before going online
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// location is the last known position of the courier
	location kernel.Location
	// online tells whether the courier is taking deliveries
	online bool
	// approval is the admin review outcome
	approval ApprovalStatus
	// rating is the running average of client scores
	rating kernel.Rating
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// This is the only way to register a courier.
//
// Parameters:
//   - id: Unique identifier for the courier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - location: Initial position (must be valid location)
//
// Returns:
//   - *Courier: An offline courier pending approval, with no rating yet
//   - error: Validation error if any parameter is invalid (aggregated errors for multiple issues)
//
// Example:
//
//	location, _ := kernel.NewLocation(19.4300, -99.1300)
//	courier, err := NewCourier(kernel.NewUUID(), "Alice", location)
//	if err != nil {
//	    log.Fatal("Failed to create courier:", err)
//	}
func NewCourier(id kernel.UUID, name string, location kernel.Location) (*Courier, error) {
	return RestoreCourier(id, name, location, false, ApprovalPending, kernel.Rating{})
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
//
// Business Rules:
//   - Courier ID must be valid
//   - Name cannot be empty
//   - Location must be valid coordinates
//   - Approval status must be one of the known values
//   - An online courier must be approved
func RestoreCourier(
	id kernel.UUID,
	name string,
	location kernel.Location,
	online bool,
	approval ApprovalStatus,
	rating kernel.Rating,
) (*Courier, error) {
	courier := &Courier{
		guard:  guard.NewConstructorGuard(),
		rating: rating,
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setLocation(location),
		courier.setAvailability(approval, online),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed.
// The zero value of Courier is invalid and will fail this validation.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// Location returns the last known position of the courier.
func (c *Courier) Location() kernel.Location {
	return c.location
}

// IsOnline reports whether the courier is taking deliveries.
func (c *Courier) IsOnline() bool {
	return c.online
}

// Approval returns the admin review outcome.
func (c *Courier) Approval() ApprovalStatus {
	return c.approval
}

// Rating returns the running average of client scores.
func (c *Courier) Rating() kernel.Rating {
	return c.rating
}

// Review records the admin decision on the courier application.
// Rejecting an online courier takes it offline.
//
// Parameters:
//   - decision: ApprovalApproved or ApprovalRejected
//
// Returns:
//   - error: Validation error if decision is not a review outcome
func (c *Courier) Review(decision ApprovalStatus) error {
	if !decision.IsDecision() {
		return errs.NewValueIsInvalidErrorWithCause(
			"approval status",
			fmt.Errorf("%q is not a review decision", string(decision)),
		)
	}

	c.approval = decision
	if decision == ApprovalRejected {
		c.online = false
	}
	return nil
}

// SetOnline toggles availability. Going online requires an approved
// application; going offline is always allowed.
func (c *Courier) SetOnline(online bool) error {
	if online && c.approval != ApprovalApproved {
		return ErrCourierIsNotApproved
	}

	c.online = online
	return nil
}

// CanAcceptDelivery returns nil when the courier may take a ready order.
//
// Returns:
//   - error: ErrCourierIsNotApproved or ErrCourierIsOffline
func (c *Courier) CanAcceptDelivery() error {
	if c.approval != ApprovalApproved {
		return ErrCourierIsNotApproved
	}
	if !c.online {
		return ErrCourierIsOffline
	}
	return nil
}

// UpdateLocation replaces the position with a reported one.
func (c *Courier) UpdateLocation(location kernel.Location) error {
	return c.setLocation(location)
}

// MoveToward advances the courier StepFraction of the remaining way toward
// destination. Movement never overshoots; repeated calls converge on the
// destination.
//
// Example:
//
//	// Courier 1 km away from the client
//	err := courier.MoveToward(destination)
//	// Courier is now ~900 m away
func (c *Courier) MoveToward(destination kernel.Location) error {
	next, err := c.location.MoveToward(destination, StepFraction)
	if err != nil {
		return err
	}

	return c.setLocation(next)
}

// DistanceMeters returns the haversine distance from the courier to target.
func (c *Courier) DistanceMeters(target kernel.Location) (float64, error) {
	km, err := c.location.DistanceKm(target)
	if err != nil {
		return 0, err
	}
	return km * 1000, nil
}

// HasArrived reports whether the courier is within ArrivalThresholdMeters of
// destination.
func (c *Courier) HasArrived(destination kernel.Location) (bool, error) {
	meters, err := c.DistanceMeters(destination)
	if err != nil {
		return false, err
	}
	return meters <= ArrivalThresholdMeters, nil
}

// RecordRating folds a client score (1..5) into the running average.
func (c *Courier) RecordRating(score int) error {
	rating, err := c.rating.Add(score)
	if err != nil {
		return err
	}

	c.rating = rating
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *Courier) setAvailability(approval ApprovalStatus, online bool) error {
	if err := approval.Validate(); err != nil {
		return err
	}
	if online && approval != ApprovalApproved {
		return errs.NewValueIsInvalidErrorWithCause("online", ErrCourierIsNotApproved)
	}

	c.approval = approval
	c.online = online
	return nil
}
