package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateRoomID      = errors.New("room id already exists")
	ErrRoomNotFound         = errors.New("room not found")
	ErrNoRoomsAvailable     = errors.New("no rooms available")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
)

// ValidationError describes malformed input. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientCapacityError carries the number of students left without a seat.
type InsufficientCapacityError struct {
	Shortfall int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: %d students could not be seated", e.Shortfall)
}

func (e *InsufficientCapacityError) Is(target error) bool {
	return target == ErrInsufficientCapacity
}
