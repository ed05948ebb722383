// Package kernel provides the core domain primitives shared across the
// tracking domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a validated latitude/longitude pair used for live location ticks
//   - TrackingCode: the short human-facing code customers use to look up an order
//
// All primitives are immutable value objects. Their zero values are invalid
// and fail validation; instances must be created through the provided
// constructors.
package kernel
