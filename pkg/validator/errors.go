package validator

import "errors"

var (
	ErrUnknownRule  = errors.New("unknown rule name")
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidGroup = errors.New("invalid field group")
	ErrDuplicate    = errors.New("duplicate field")
)
