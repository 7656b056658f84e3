package core

import (
	"errors"
	"fmt"

	"github.com/dkeye/ExamRooms/internal/domain"
)

// AllocatedRoomDTO is the per-room line of an allocation view.
type AllocatedRoomDTO struct {
	RoomID         domain.RoomID `json:"roomId"`
	FloorNo        int           `json:"floorNo"`
	Capacity       int           `json:"capacity"`
	AllocatedSeats int           `json:"allocatedSeats"`
	Utilization    int           `json:"utilization"`
	NearWashroom   bool          `json:"nearWashroom"`
}

// AllocationDTO is a read-only view of a successful allocation for APIs.
type AllocationDTO struct {
	TotalStudents  int                `json:"totalStudents"`
	RoomsAllocated int                `json:"roomsAllocated"`
	SeatsUsed      int                `json:"seatsUsed"`
	Rooms          []AllocatedRoomDTO `json:"rooms"`
}

func NewAllocationDTO(a *domain.Allocation) AllocationDTO {
	out := AllocationDTO{
		TotalStudents:  a.TotalStudents,
		RoomsAllocated: a.RoomCount(),
		SeatsUsed:      a.SeatsUsed(),
		Rooms:          make([]AllocatedRoomDTO, 0, len(a.Rooms)),
	}
	for _, r := range a.Rooms {
		out.Rooms = append(out.Rooms, AllocatedRoomDTO{
			RoomID:         r.ID,
			FloorNo:        r.FloorNo,
			Capacity:       r.Capacity,
			AllocatedSeats: r.AllocatedSeats,
			Utilization:    r.Utilization(),
			NearWashroom:   r.NearWashroom,
		})
	}
	return out
}

const (
	CodeValidation           = "validation_error"
	CodeDuplicateRoomID      = "duplicate_room_id"
	CodeRoomNotFound         = "room_not_found"
	CodeNoRoomsAvailable     = "no_rooms_available"
	CodeInsufficientCapacity = "insufficient_capacity"
	CodeInternal             = "internal_error"
)

// ErrorDTO is the client-facing form of a core error.
type ErrorDTO struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	Shortfall int    `json:"shortfall,omitempty"`
}

// DescribeError classifies err into a stable code and a user-facing message.
func DescribeError(err error) ErrorDTO {
	var (
		verr   *domain.ValidationError
		capErr *domain.InsufficientCapacityError
	)
	switch {
	case errors.As(err, &verr):
		return ErrorDTO{Code: CodeValidation, Error: verr.Error()}
	case errors.Is(err, domain.ErrDuplicateRoomID):
		return ErrorDTO{Code: CodeDuplicateRoomID, Error: "Room ID already exists. Please use a unique ID."}
	case errors.Is(err, domain.ErrRoomNotFound):
		return ErrorDTO{Code: CodeRoomNotFound, Error: err.Error()}
	case errors.Is(err, domain.ErrNoRoomsAvailable):
		return ErrorDTO{Code: CodeNoRoomsAvailable, Error: "No classrooms available. Please add classrooms first."}
	case errors.As(err, &capErr):
		return ErrorDTO{
			Code:      CodeInsufficientCapacity,
			Error:     fmt.Sprintf("Not enough seats available. %d students could not be accommodated.", capErr.Shortfall),
			Shortfall: capErr.Shortfall,
		}
	default:
		return ErrorDTO{Code: CodeInternal, Error: "internal error"}
	}
}
