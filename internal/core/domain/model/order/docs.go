// Package order provides the Order aggregate root and its lifecycle state
// machine for the food delivery flow between a client, a business and a
// courier.
//
// The package includes:
//   - Order: the aggregate root holding items, fees, status, courier and messages
//   - Status: the lifecycle states and the allowed transitions between them
//   - Item, Message, PaymentMethod, PreparationTime: values owned by an order
//   - TransitionRefusedError: the typed refusal returned by every transition
//
// Key business rules:
//   - Total price is always the items subtotal plus the delivery fee
//   - All items of an order belong to the order's business
//   - A preparation time exists once the business accepted the order
//   - A courier is assigned exactly while on the way and after delivery
//   - Rejected, Cancelled and Delivered are terminal
//   - A delivered order can be rated once
//
// A refused transition leaves the order unchanged.
package order
