package app

import (
	"cmp"
	"slices"

	"github.com/dkeye/ExamRooms/internal/domain"
)

// Allocate seats demand students greedily. Rooms are taken by floor ascending,
// then capacity descending; equal rooms keep their roster order. Each room is
// filled up to capacity until nobody is left, and rooms reached after that
// are not part of the result.
//
// The caller rejects demand <= 0. On failure the error is
// domain.ErrNoRoomsAvailable or *domain.InsufficientCapacityError.
func Allocate(rooms []domain.Room, demand int) (*domain.Allocation, error) {
	if len(rooms) == 0 {
		return nil, domain.ErrNoRoomsAvailable
	}

	sorted := slices.Clone(rooms)
	slices.SortStableFunc(sorted, func(a, b domain.Room) int {
		if c := cmp.Compare(a.FloorNo, b.FloorNo); c != 0 {
			return c
		}
		return cmp.Compare(b.Capacity, a.Capacity)
	})

	remaining := demand
	allocated := make([]domain.AllocatedRoom, 0, len(sorted))
	for _, room := range sorted {
		if remaining <= 0 {
			break
		}
		seats := min(room.Capacity, remaining)
		allocated = append(allocated, domain.AllocatedRoom{Room: room, AllocatedSeats: seats})
		remaining -= seats
	}

	if remaining > 0 {
		return nil, &domain.InsufficientCapacityError{Shortfall: remaining}
	}
	return &domain.Allocation{Rooms: allocated, TotalStudents: demand}, nil
}
