package resp

import "errors"

var (
	// ErrReservedNull is returned when a string argument starts with the
	// null byte while blob markers are enabled. The null byte introduces
	// the marker sequences, so such strings cannot round-trip.
	ErrReservedNull = errors.New("string argument starts with the reserved null byte")

	// ErrUnsupportedArgType is returned when no encoding rule matches the
	// argument and blob markers are disabled.
	ErrUnsupportedArgType = errors.New("unsupported argument type")
)
