package gamelist

import (
	"errors"
	"fmt"
)

// SelectionError reports a selector that could not be applied.
//
// Selection errors are caller contract violations: the list is left
// unchanged and the caller should retry with a corrected selector.
type SelectionError struct {
	// Code identifies the error category.
	Code SelectionErrorCode

	// Message is a human-readable description.
	Message string

	// Selector is the selector as given by the caller.
	Selector string
}

// SelectionErrorCode categorizes selection errors.
type SelectionErrorCode string

const (
	// ErrCodeOutOfRange indicates an index or range outside the candidates.
	ErrCodeOutOfRange SelectionErrorCode = "OUT_OF_RANGE"

	// ErrCodeInvalidSelector indicates a selector that is not "all", a
	// number, a range, or the name of a candidate.
	ErrCodeInvalidSelector SelectionErrorCode = "INVALID_SELECTOR"
)

// Error implements the error interface.
func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsOutOfRange returns true if the error is an out-of-range selection.
// Uses errors.As to handle wrapped errors.
func IsOutOfRange(err error) bool {
	var se *SelectionError
	if errors.As(err, &se) {
		return se.Code == ErrCodeOutOfRange
	}
	return false
}

// IsInvalidSelector returns true if the error is an unrecognized selector.
// Uses errors.As to handle wrapped errors.
func IsInvalidSelector(err error) bool {
	var se *SelectionError
	if errors.As(err, &se) {
		return se.Code == ErrCodeInvalidSelector
	}
	return false
}

func newIndexError(selector string, index, size int) *SelectionError {
	return &SelectionError{
		Code:     ErrCodeOutOfRange,
		Message:  fmt.Sprintf("index %d out of bounds: list size is %d", index, size),
		Selector: selector,
	}
}

func newRangeStartError(selector string) *SelectionError {
	return &SelectionError{
		Code:     ErrCodeOutOfRange,
		Message:  "range must start from 1 or greater",
		Selector: selector,
	}
}

func newNumberError(selector string) *SelectionError {
	return &SelectionError{
		Code:     ErrCodeOutOfRange,
		Message:  fmt.Sprintf("number out of range: %s", selector),
		Selector: selector,
	}
}

func newInvalidSelectorError(selector string) *SelectionError {
	return &SelectionError{
		Code:     ErrCodeInvalidSelector,
		Message:  fmt.Sprintf("invalid input format: %s", selector),
		Selector: selector,
	}
}
