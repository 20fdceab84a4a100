package recurring

import "errors"

var (
	ErrInvalidRecurrence  = errors.New("invalid recurrence")
	ErrTooManyOccurrences = errors.New("recurrence produces too many occurrences")
	ErrInvalidSchedule    = errors.New("failed to build occurrence schedule")
)
