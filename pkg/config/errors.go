package config

import "errors"

var (
	// ErrNilPointer is returned when Load is called with a nil destination.
	ErrNilPointer = errors.New("config.nil_pointer")

	// ErrParsingConfig is returned when environment parsing fails.
	ErrParsingConfig = errors.New("config.parsing_failed")
)
