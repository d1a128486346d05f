package myerrors

import "errors"

var (
	// ErrInvalidCoordinates rejects malformed or out-of-range input before
	// any search work happens.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrNoRouteFound is the expected negative outcome of an exhausted
	// search, distinct from a system failure.
	ErrNoRouteFound = errors.New("no route available")

	// ErrDegenerateRoute marks a route too short to price a fare on.
	ErrDegenerateRoute = errors.New("route has too few points to calculate fare")

	ErrVehicleNotFound = errors.New("vehicle not found")
)
