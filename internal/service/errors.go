package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation wraps every input rejection. The wrapped message names
	// the offending field.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden means the actor's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNoDestination means a sprint has no in-progress or later sprint to
	// carry its open cards into.
	ErrNoDestination = errors.New("no destination sprint")
	// ErrOriginalTodo rejects deleting a todo instantiated from the area
	// checklist.
	ErrOriginalTodo = errors.New("original todos cannot be deleted")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
