package variousdbscan

import "errors"

var (
	// ErrInvalidParameter indicates a configuration value or input shape
	// failed validation before any clustering work began.
	ErrInvalidParameter = errors.New("variousdbscan: invalid parameter")
	// ErrPrimitive indicates a density clustering primitive invocation
	// failed. The run is aborted and no partial result is returned.
	ErrPrimitive = errors.New("variousdbscan: primitive failure")
)
