package core

import (
	"context"

	"github.com/dkeye/ExamRooms/internal/domain"
)

//go:generate mockgen -destination=mocks/room_store_mock.go -package=mocks . RoomStore

// RoomStore persists the whole roster under one fixed key.
// Load on an absent key returns an empty roster, not an error.
type RoomStore interface {
	Load(ctx context.Context) ([]domain.Room, error)
	Save(ctx context.Context, rooms []domain.Room) error
}

// RosterEvent is published after every successful registry mutation.
type RosterEvent struct {
	Rooms []domain.Room      `json:"rooms"`
	Stats domain.RosterStats `json:"stats"`
}

// RosterListener receives roster events. Implementations must not block.
type RosterListener interface {
	OnRoster(ev RosterEvent)
}
