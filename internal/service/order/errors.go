package order

import (
	"errors"
	"fmt"

	"tracker/internal/entities"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflictingWrite  = errors.New("conflicting write, re-fetch the order and retry")
	ErrStorage           = errors.New("storage unavailable")
)

// InvalidTransitionError несёт оба статуса, errors.Is(err, ErrInvalidTransition) == true.
type InvalidTransitionError struct {
	From entities.OrderStatusType
	To   entities.OrderStatusType
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
