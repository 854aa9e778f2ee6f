package geometry

import "errors"

var (
	// ErrEmptyShape is returned when a shape is built from no points.
	ErrEmptyShape = errors.New("shape needs at least one point")

	// ErrMalformedTransform is returned for matrices that are not 3x3 or
	// whose bottom row is not [0 0 1].
	ErrMalformedTransform = errors.New("malformed affine transform")

	// ErrSingularTransform is returned when inverting a transform whose
	// linear part has a zero determinant.
	ErrSingularTransform = errors.New("singular affine transform")
)
