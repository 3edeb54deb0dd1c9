// Package courier provides the Courier aggregate root: the delivery partner
// who picks up ready orders and carries them to the client.
//
// The package includes:
//   - Courier: the aggregate root holding identity, live position, availability and rating
//   - ApprovalStatus: the outcome of the admin review of a courier application
//
// Key business rules:
//   - Couriers start offline and pending approval
//   - Only approved couriers can go online
//   - Only online, approved couriers can accept a delivery
//   - While delivering, each tracking tick moves the courier 10% of the
//     remaining way to the destination
//   - A courier has arrived once within 10 meters of the destination
//   - Ratings use the same running average as businesses
package courier
