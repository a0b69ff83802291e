package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInsufficientData is the parent of every "cannot compute, skip this analysis" condition.
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// ErrInsufficientGroups is returned when fewer than two non-empty groups survive filtering.
	ErrInsufficientGroups = fmt.Errorf("%w: fewer than 2 groups", ErrInsufficientData)

	// ErrInsufficientPairs is returned when fewer than three jointly valid pairs exist for a correlation.
	ErrInsufficientPairs = fmt.Errorf("%w: fewer than 3 valid pairs", ErrInsufficientData)

	// Input errors
	ErrUnknownCategory = errors.New("unrecognized category value")
	ErrNonNumericScore = errors.New("non-numeric score")
	ErrMissingColumn   = errors.New("required column missing")
	ErrLengthMismatch  = errors.New("sample length mismatch")
)

// NewInsufficientGroupsError reports how many groups survived for a dimension.
func NewInsufficientGroupsError(dimension string, groups int) error {
	return fmt.Errorf("%w: dimension %s has %d", ErrInsufficientGroups, dimension, groups)
}

// NewInsufficientPairsError reports how many valid pairs a correlation had.
func NewInsufficientPairsError(dimension string, pairs int) error {
	return fmt.Errorf("%w: dimension %s has %d", ErrInsufficientPairs, dimension, pairs)
}

func NewUnknownCategoryError(column, value string, row int) error {
	return fmt.Errorf("%w %q in column %s (row %d)", ErrUnknownCategory, value, column, row)
}

func NewNonNumericScoreError(column, value string, row int) error {
	return fmt.Errorf("%w %q in column %s (row %d)", ErrNonNumericScore, value, column, row)
}

// IsInsufficientData reports whether err means the analysis should be skipped rather than aborted.
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

// IsInputError reports whether err came from rejecting malformed input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrNonNumericScore) ||
		errors.Is(err, ErrMissingColumn)
}
