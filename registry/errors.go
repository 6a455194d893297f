package registry

import "errors"

// Common errors returned by the endpoint registry.
var (
	// ErrUnknownMethod is returned when looking up a method name that
	// no loaded definition file declares.
	ErrUnknownMethod = errors.New("unknown endpoint method")

	// ErrUnknownTemplate is returned at load time when an endpoint
	// entry references a pattern template that is not defined.
	ErrUnknownTemplate = errors.New("unknown pattern template")

	// ErrDuplicateMethod is returned at load time when two definition
	// sources declare the same method name.
	ErrDuplicateMethod = errors.New("duplicate endpoint method")

	// ErrInvalidDefinition is returned at load time for a malformed
	// endpoint entry (empty method name, no path, bad namespace).
	ErrInvalidDefinition = errors.New("invalid endpoint definition")
)
