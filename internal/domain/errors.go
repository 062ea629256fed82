package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("employee not found")
)

// ErrStorage marks a change that was applied in memory but could not be
// written to the persistent mirror.
var ErrStorage = errors.New("storage failure")

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type NotFoundError struct {
	ID int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("employee %d not found", e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
