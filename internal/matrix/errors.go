package matrix

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the matrices path is neither a file nor a directory.
var ErrNotFound = errors.New("matrices path not found")

// FormatError is returned when a matrix file cannot be turned into a Matrix.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("matrix file '%s': %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("matrix file '%s': %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
