package features

import (
	"fmt"
	"strings"
)

// MissingValueError indicates a required column is absent or blank.
type MissingValueError struct {
	Column string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("column '%s' is empty", e.Column)
}

// InvalidCategoryError indicates a categorical value that maps to no training category.
type InvalidCategoryError struct {
	Column string
	Value  string
	Labels []string
	Codes  []int
}

func (e *InvalidCategoryError) Error() string {
	quoted := make([]string, len(e.Labels))
	for i, l := range e.Labels {
		quoted[i] = "'" + l + "'"
	}
	codes := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		codes[i] = fmt.Sprintf("%d", c)
	}
	return fmt.Sprintf("value '%s' in '%s' is not recognized; use one of the labels [%s] or codes [%s]",
		e.Value, e.Column, strings.Join(quoted, ", "), strings.Join(codes, ", "))
}

// InvalidNumericError indicates a numeric column whose value cannot be read as a number.
type InvalidNumericError struct {
	Column string
	Value  string
}

func (e *InvalidNumericError) Error() string {
	return fmt.Sprintf("value '%s' in column '%s' is not valid (must be a number)", e.Value, e.Column)
}

// EncodeError wraps the first column failure hit while encoding a record.
type EncodeError struct {
	Column string
	Value  string
	Err    error
}

func (e *EncodeError) Error() string {
	return e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
