package event

import "errors"

var (
	// ErrInvalidRecord is returned when a record does not have the editor shape.
	ErrInvalidRecord = errors.New("invalid event record")

	// ErrInvalidWireEvent is returned when a wire event cannot be mapped.
	ErrInvalidWireEvent = errors.New("invalid wire event")

	// ErrInvalidNumber is returned when numeric editor input cannot be sent to the API.
	ErrInvalidNumber = errors.New("invalid numeric value")
)
