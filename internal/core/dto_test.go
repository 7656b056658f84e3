package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dkeye/ExamRooms/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDescribeError(t *testing.T) {
	cases := []struct {
		err       error
		code      string
		shortfall int
	}{
		{&domain.ValidationError{Field: "capacity", Reason: "must be greater than 0"}, CodeValidation, 0},
		{fmt.Errorf("add %q: %w", "A", domain.ErrDuplicateRoomID), CodeDuplicateRoomID, 0},
		{fmt.Errorf("remove %q: %w", "A", domain.ErrRoomNotFound), CodeRoomNotFound, 0},
		{domain.ErrNoRoomsAvailable, CodeNoRoomsAvailable, 0},
		{&domain.InsufficientCapacityError{Shortfall: 70}, CodeInsufficientCapacity, 70},
		{errors.New("disk full"), CodeInternal, 0},
	}
	for _, tc := range cases {
		got := DescribeError(tc.err)
		assert.Equal(t, tc.code, got.Code, tc.err.Error())
		assert.Equal(t, tc.shortfall, got.Shortfall)
		assert.NotEmpty(t, got.Error)
	}

	assert.Equal(t,
		"Not enough seats available. 70 students could not be accommodated.",
		DescribeError(&domain.InsufficientCapacityError{Shortfall: 70}).Error)
}

func TestNewAllocationDTO(t *testing.T) {
	dto := NewAllocationDTO(&domain.Allocation{
		Rooms: []domain.AllocatedRoom{
			{Room: domain.Room{ID: "B", Capacity: 50, FloorNo: 1, NearWashroom: true}, AllocatedSeats: 50},
			{Room: domain.Room{ID: "C", Capacity: 50, FloorNo: 1}, AllocatedSeats: 10},
		},
		TotalStudents: 60,
	})
	assert.Equal(t, 60, dto.TotalStudents)
	assert.Equal(t, 2, dto.RoomsAllocated)
	assert.Equal(t, 60, dto.SeatsUsed)
	assert.Equal(t, 100, dto.Rooms[0].Utilization)
	assert.Equal(t, 20, dto.Rooms[1].Utilization)
	assert.True(t, dto.Rooms[0].NearWashroom)
}
