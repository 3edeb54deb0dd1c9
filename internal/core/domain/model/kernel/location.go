package kernel

import (
	"errors"
	"fmt"
	"math"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrLocationIsNotConstructed is returned when a zero Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable geographic coordinate in decimal degrees. It is
// used for business addresses, delivery destinations and courier positions.
// The zero value is invalid; it stands for "geolocation unavailable".
//
// Example:
//
//	loc, err := kernel.NewLocation(19.4326, -99.1332)
//	if err != nil {
//	    // coordinates were NaN or out of range
//	}
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation validates that both coordinates are finite and inside the
// latitude [-90..90] and longitude [-180..180] ranges.
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate reports whether the Location was built by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Lat() float64 {
	return l.lat
}

func (l Location) Lng() float64 {
	return l.lng
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.lat, l.lng)
}

// IsEqual compares coordinates of two valid locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceKm returns the great-circle distance in kilometers computed with
// the haversine formula.
//
// Example:
//
//	business, _ := kernel.NewLocation(19.4300, -99.1300)
//	client, _ := kernel.NewLocation(19.4350, -99.1400)
//	km, _ := business.DistanceKm(client) // ~1.19
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return haversineKm(l.lat, l.lng, other.lat, other.lng), nil
}

// MoveToward returns the point that covers the given fraction of the
// remaining way to target, interpolating latitude and longitude linearly.
// A fraction of 1 lands exactly on target.
func (l Location) MoveToward(target Location, fraction float64) (Location, error) {
	if err := errors.Join(l.Validate(), target.Validate()); err != nil {
		return Location{}, err
	}
	if math.IsNaN(fraction) || fraction <= 0 || fraction > 1 {
		return Location{}, errs.NewValueIsOutOfRangeError("fraction", fraction, "0 (exclusive)", 1)
	}
	if fraction == 1 {
		return target, nil
	}

	return NewLocation(
		l.lat+(target.lat-l.lat)*fraction,
		l.lng+(target.lng-l.lng)*fraction,
	)
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, MinLongitude, MaxLongitude)
	}

	l.lng = lng
	return nil
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
