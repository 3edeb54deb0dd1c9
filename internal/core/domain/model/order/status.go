package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──accept──> InPreparation ──ready──> ReadyForPickup ──pickup──> OnTheWay ──deliver──> Delivered
//	   │                      │                        │
//	   ├──reject──> Rejected  │                        │
//	   └──────────────────────┴────────cancel──────────┴──> Cancelled   (Accepted may also cancel)
//
// Rejected, Cancelled and Delivered are terminal. Accepted is part of the
// status vocabulary shared with stored data; business acceptance moves an
// order straight to InPreparation.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Accepted
	Rejected
	InPreparation
	ReadyForPickup
	OnTheWay
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Accepted:       "ACCEPTED",
		Rejected:       "REJECTED",
		InPreparation:  "IN_PREPARATION",
		ReadyForPickup: "READY_FOR_PICKUP",
		OnTheWay:       "ON_THE_WAY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// ParseStatus converts the stored/wire name of a status back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Cancelled || s == Delivered
}

// HasPassedPreparation reports whether an order in status s must carry a
// preparation time. Cancelled is ambiguous and is checked by the caller.
func (s Status) HasPassedPreparation() bool {
	return s == InPreparation || s == ReadyForPickup || s == OnTheWay || s == Delivered
}

// ValidateCanHaveCourier checks courier presence against the status: a
// courier is assigned exactly while on the way and after delivery.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	requiresCourier := s == OnTheWay || s == Delivered

	if courier && !requiresCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}

	if !courier && requiresCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}

	return nil
}

// Accept moves a pending order into preparation.
func (s Status) Accept() (Status, error) {
	return s.transition(OperationAccept, InPreparation, Pending)
}

// Reject closes a pending order.
func (s Status) Reject() (Status, error) {
	return s.transition(OperationReject, Rejected, Pending)
}

// MarkReady signals the kitchen finished the order.
func (s Status) MarkReady() (Status, error) {
	return s.transition(OperationMarkReady, ReadyForPickup, InPreparation)
}

// PickUp hands a ready order over to a courier.
func (s Status) PickUp() (Status, error) {
	return s.transition(OperationPickUp, OnTheWay, ReadyForPickup)
}

// Deliver completes an order that is on the way.
func (s Status) Deliver() (Status, error) {
	return s.transition(OperationDeliver, Delivered, OnTheWay)
}

// Cancel aborts an order that has not left the business yet.
func (s Status) Cancel() (Status, error) {
	return s.transition(OperationCancel, Cancelled, Pending, Accepted, InPreparation, ReadyForPickup)
}

func (s Status) transition(op Operation, to Status, from ...Status) (Status, error) {
	for _, allowed := range from {
		if s == allowed {
			return to, nil
		}
	}
	return s, NewTransitionRefusedError(op, s)
}
