// Package order provides the domain model for delivery orders and their
// status lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding identity, contact details, the
//     current status, and the append-only status history
//   - Status: the fixed status enumeration with its transition rules
//   - StatusUpdate: an immutable history entry appended on every transition
//
// Key business rules:
//   - An order's status always equals the status of the most recently
//     appended history entry, or Pending while the history is empty
//   - History entries are never mutated, reordered, or removed
//   - Under the strict transition policy, status moves only forward one
//     step at a time: pending -> picked_up -> on_the_way -> delivered
//   - Under the permissive policy, any status in the enumeration may be set
package order
