package kernel

import (
	"fmt"
	"math"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin float64 = -90
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax float64 = 90
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin float64 = -180
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax float64 = 180
)

// ErrGeoPointIsNotConstructed is returned when validating a GeoPoint that
// was not created through NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a validated WGS84
// coordinate pair. It is the payload of a live location tick: both fields
// must be finite numbers within the valid latitude/longitude ranges.
//
// The zero value is invalid and fails validation; use NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(12.9, 77.6)
//	if err != nil {
//	    // coordinates were NaN, infinite, or out of range
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in decimal
// degrees. Both values must be finite; latitude must be within
// [LatitudeMin..LatitudeMax] and longitude within [LongitudeMin..LongitudeMax].
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := point.setLatitude(latitude); err != nil {
		return GeoPoint{}, err
	}
	if err := point.setLongitude(longitude); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual reports whether two points hold the same coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// String returns a "GeoPoint(lat,lon)" representation for logs.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%g,%g)", p.latitude, p.longitude)
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) {
		return errs.NewValueIsInvalidError("latitude")
	}
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return errs.NewValueIsInvalidError("longitude")
	}
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	p.longitude = longitude
	return nil
}
