package export

import "fmt"

// ExportError is returned when a destination can't be written.
type ExportError struct {
	Destination string
	Err         error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting to %s: %s", e.Destination, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func (e *ExportError) Cause() error {
	return e.Err
}
