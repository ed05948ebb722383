package queries

import (
	"errors"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery is the unauthenticated customer lookup: resolve an order
// by its human-facing tracking code.
type TrackOrderQuery struct {
	code kernel.TrackingCode

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query for the given tracking code string.
// Returns an error when the code is empty or malformed.
func NewTrackOrderQuery(code string) (TrackOrderQuery, error) {
	trackingCode, err := kernel.NewTrackingCode(code)
	if err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{
		code:  trackingCode,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// Code returns the tracking code to look up.
func (q TrackOrderQuery) Code() kernel.TrackingCode {
	return q.code
}
