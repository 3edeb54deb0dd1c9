package services

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/order"
)

// ErrCourierMismatch is returned when the courier handed to the tracker is not
// the one assigned to the order.
var ErrCourierMismatch = errors.New("courier is not assigned to the order")

// DeliveryTracker drives the proximity trigger for orders on the way.
//
// Key responsibilities:
//   - Moving the assigned courier one step toward the delivery location
//   - Completing the delivery once the courier is within the arrival threshold
//
// Business rules:
//   - Only ON_THE_WAY orders are tracked; any other status is left untouched
//   - Each step covers courier.StepFraction of the remaining way
//   - Arrival is a haversine distance of courier.ArrivalThresholdMeters or less
//
// Example usage:
//
//	tracker := NewDeliveryTracker()
//	delivered, err := tracker.Advance(o, c)
//	if err != nil {
//	    return err
//	}
//	if delivered {
//	    // notify the client
//	}
type DeliveryTracker struct{}

func NewDeliveryTracker() DeliveryTracker {
	return DeliveryTracker{}
}

// Advance runs one tracking tick for the order.
//
// Parameters:
//   - o: the order being delivered
//   - c: the courier assigned to the order
//
// Returns:
//   - bool: true when this tick delivered the order
//   - error: validation errors or ErrCourierMismatch
func (t DeliveryTracker) Advance(o *order.Order, c *courier.Courier) (bool, error) {
	if err := errors.Join(o.Validate(), c.Validate()); err != nil {
		return false, err
	}

	if o.Status() != order.OnTheWay {
		return false, nil
	}

	if o.Courier() == nil || !o.Courier().IsEqual(c.ID()) {
		return false, fmt.Errorf("%w: order %s, courier %s", ErrCourierMismatch, o.ID(), c.ID())
	}

	if err := c.MoveToward(o.DeliveryLocation()); err != nil {
		return false, err
	}

	arrived, err := c.HasArrived(o.DeliveryLocation())
	if err != nil {
		return false, err
	}
	if !arrived {
		return false, nil
	}

	if err = o.Deliver(); err != nil {
		return false, err
	}
	return true, nil
}
