package models

import (
	"errors"
	"fmt"
)

// Document sides of a comparison.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// InvalidJSONInputError reports a document that could not be parsed. The
// diff engine itself never sees such input.
type InvalidJSONInputError struct {
	Side   string
	Source string
	Err    error
}

// Error returns the error message for InvalidJSONInputError.
func (e *InvalidJSONInputError) Error() string {
	if e.Side != "" {
		return fmt.Sprintf("invalid %s document %s: %v", e.Side, e.Source, e.Err)
	}
	return fmt.Sprintf("invalid document %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *InvalidJSONInputError) Unwrap() error {
	return e.Err
}

// IsInvalidJSONInput reports whether err is or wraps an InvalidJSONInputError.
func IsInvalidJSONInput(err error) bool {
	var target *InvalidJSONInputError
	return errors.As(err, &target)
}
