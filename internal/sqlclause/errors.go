package sqlclause

import "errors"

var (
	// ErrInvalidArgument is returned when an update payload has no fields or
	// names a field without a column.
	ErrInvalidArgument = errors.New("no data")

	// ErrRangeInvalid is returned when a lower bound exceeds its paired upper bound.
	ErrRangeInvalid = errors.New("invalid range")
)

// ClauseError carries the field context of a builder failure.
//
// errors.Is(err, ErrInvalidArgument) and errors.Is(err, ErrRangeInvalid) keep
// working through Unwrap.
type ClauseError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ClauseError) Error() string {
	return e.Message
}

func (e *ClauseError) Unwrap() error {
	return e.Kind
}
