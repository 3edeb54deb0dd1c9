// Package kernel provides the value objects shared by every aggregate of the
// food delivery domain:
//   - UUID: identifiers for orders, businesses, couriers and messages
//   - Location: a validated geographic coordinate with haversine distance and
//     linear interpolation used by live tracking
//   - Rating: the running average of 1..5 scores kept by businesses and couriers
//
// All of them are immutable; zero values are invalid and fail Validate.
package kernel
