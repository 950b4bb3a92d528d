package evolve

import "errors"

// Errors returned by evolve.
var (
	// ErrInvalidConfig is returned when a search configuration is rejected
	// before the loop starts.
	ErrInvalidConfig = errors.New("evolve: invalid config")

	// ErrInvalidDimensions is returned when a target has no pixels.
	ErrInvalidDimensions = errors.New("evolve: invalid dimensions")

	// ErrDegenerateTriangle is returned when three vertices are collinear.
	ErrDegenerateTriangle = errors.New("evolve: degenerate triangle")

	// ErrSizeMismatch is returned when two canvases differ in size.
	ErrSizeMismatch = errors.New("evolve: canvas size mismatch")
)
