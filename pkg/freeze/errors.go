package freeze

import "errors"

var (
	// ErrFreeze is returned when a value cannot be serialized.
	ErrFreeze = errors.New("failed to freeze value")

	// ErrThaw is returned when a payload cannot be deserialized.
	ErrThaw = errors.New("failed to thaw payload")
)
