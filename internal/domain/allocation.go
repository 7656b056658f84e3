package domain

import "math"

// AllocatedRoom is a room plus the seats assigned to it by one allocation.
type AllocatedRoom struct {
	Room
	AllocatedSeats int `json:"allocatedSeats"`
}

// Utilization is the share of the room in use, rounded to a whole percent.
func (a AllocatedRoom) Utilization() int {
	if a.Capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(a.AllocatedSeats) / float64(a.Capacity) * 100))
}

// Allocation is a successful seat assignment covering the full demand.
type Allocation struct {
	Rooms         []AllocatedRoom `json:"rooms"`
	TotalStudents int             `json:"totalStudents"`
}

func (a *Allocation) RoomCount() int { return len(a.Rooms) }

func (a *Allocation) SeatsUsed() int {
	total := 0
	for _, r := range a.Rooms {
		total += r.AllocatedSeats
	}
	return total
}

// RosterStats summarises the registry for list views.
type RosterStats struct {
	TotalRooms    int `json:"totalRooms"`
	TotalCapacity int `json:"totalCapacity"`
}
