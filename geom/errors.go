package geom

import "errors"

var (
	// ErrInvalidArgument is returned for malformed construction parameters such
	// as non-positive dimensions or empty collections.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfBounds is returned when a coordinate lies outside the extent an
	// index was built for.
	ErrOutOfBounds = errors.New("out of bounds")
)
