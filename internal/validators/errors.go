package validators

import "errors"

var (
	// ErrUnsupportedType is returned when a value of an unsupported type
	// is passed to a validator that cannot handle it.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrUnknownField is returned when a field name provided for validation
	// does not match any known or expected field.
	ErrUnknownField = errors.New("unknown field for validation")
)
