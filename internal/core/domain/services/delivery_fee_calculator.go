package services

import (
	"math"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	// BaseFee covers the first kilometer.
	BaseFee = decimal.NewFromInt(30)
	// PerKmFee is charged for every kilometer after the first.
	PerKmFee = decimal.NewFromInt(14)
)

// BaseDistanceKm is the distance covered by BaseFee.
const BaseDistanceKm = 1.0

// DeliveryFeeCalculator prices a delivery.
//
// Pricing rules:
//   - A positive fixed fee configured by the business wins regardless of distance
//   - Otherwise the haversine distance is rounded to one decimal
//   - Up to 1 km costs BaseFee
//   - Beyond that every extra kilometer costs PerKmFee, rounded to cents
//   - Missing or invalid coordinates price the delivery at 0.00
//
// The calculator is pure: it never fails and the same inputs always give the
// same fee.
//
// Example usage:
//
//	calc := NewDeliveryFeeCalculator()
//	business, _ := kernel.NewLocation(19.4300, -99.1300)
//	client, _ := kernel.NewLocation(19.4350, -99.1400)
//	fee := calc.Calculate(decimal.Zero, business, client) // 32.80 for ~1.2 km
type DeliveryFeeCalculator struct{}

func NewDeliveryFeeCalculator() DeliveryFeeCalculator {
	return DeliveryFeeCalculator{}
}

// Calculate returns the delivery fee for an order from origin (the business)
// to destination (the client).
//
// Parameters:
//   - fixedFee: business configured flat fee, zero for distance pricing
//   - origin: business location, may be a zero Location when unknown
//   - destination: delivery location, may be a zero Location when unknown
//
// Returns:
//   - decimal.Decimal: the fee with two decimals
func (c DeliveryFeeCalculator) Calculate(fixedFee decimal.Decimal, origin, destination kernel.Location) decimal.Decimal {
	if fixedFee.IsPositive() {
		return fixedFee
	}

	distance, err := origin.DistanceKm(destination)
	if err != nil {
		return decimal.Zero.Round(2)
	}

	return c.FeeForDistance(distance)
}

// FeeForDistance applies distance pricing to a raw haversine distance in km.
// The distance is rounded to one decimal first; a rounded distance that is
// not a positive finite number prices at 0.00.
func (c DeliveryFeeCalculator) FeeForDistance(distanceKm float64) decimal.Decimal {
	rounded := math.Round(distanceKm*10) / 10
	if math.IsNaN(rounded) || math.IsInf(rounded, 0) || rounded <= 0 {
		return decimal.Zero.Round(2)
	}

	if rounded <= BaseDistanceKm {
		return BaseFee.Round(2)
	}

	extra := decimal.NewFromFloat(rounded).Sub(decimal.NewFromFloat(BaseDistanceKm))
	return BaseFee.Add(extra.Mul(PerKmFee)).Round(2)
}
