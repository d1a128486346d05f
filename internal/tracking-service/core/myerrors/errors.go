package myerrors

import "errors"

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidProfile     = errors.New("invalid vehicle profile")
)
