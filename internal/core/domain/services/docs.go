// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the food delivery system.
//
// The package includes:
//   - DeliveryFeeCalculator: prices delivery from the business config and the distance to the client
//   - DeliveryTracker: advances the courier of an order on the way and fires the proximity trigger
//
// Domain services coordinate between aggregates, implementing business logic that
// does not naturally belong to a single aggregate root.
package services
