package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidPrice     = errors.New("price must be a non-negative number")
)
