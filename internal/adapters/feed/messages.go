package feed

import (
	"github.com/dkeye/ExamRooms/internal/core"
	"github.com/dkeye/ExamRooms/internal/domain"
)

type message struct {
	Type       string              `json:"type"`
	Allocation *core.AllocationDTO `json:"allocation,omitempty"`
	Error      *core.ErrorDTO      `json:"error,omitempty"`
}

type roster struct {
	Type  string             `json:"type"`
	Rooms []domain.Room      `json:"rooms"`
	Stats domain.RosterStats `json:"stats"`
}

func rosterMessage(ev core.RosterEvent) roster {
	rooms := ev.Rooms
	if rooms == nil {
		rooms = []domain.Room{}
	}
	return roster{Type: "rooms", Rooms: rooms, Stats: ev.Stats}
}

func errorMessage(e core.ErrorDTO) message {
	return message{Type: "error", Error: &e}
}
