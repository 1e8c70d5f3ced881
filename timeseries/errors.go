package timeseries

import "fmt"

// MissingFieldError is returned when an atom record lacks the handle or the short-term importance.
type MissingFieldError struct {
	// position of the offending record in the input
	Index int
	// wire name of the missing field, eg. "attentionvalue.sti"
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("atom record %d: missing field %q", e.Index, e.Field)
}

// TimestepError is returned when a point would break the timestep ordering of a series.
type TimestepError struct {
	Last, Got int64
}

func (e *TimestepError) Error() string {
	return fmt.Sprintf("timestep %d must be greater than the last timestep %d", e.Got, e.Last)
}
