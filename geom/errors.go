package geom

import "errors"

var (
	// ErrMalformedVector is returned when a from, to or origin vector does not
	// have exactly three components.
	ErrMalformedVector = errors.New("not a 3D vector")
	// ErrInvalidAxis is returned for a rotation axis other than x, y or z.
	ErrInvalidAxis = errors.New("invalid axis")
)
