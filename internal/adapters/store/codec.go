// Package store holds RoomStore implementations. Every backend keeps the
// roster as one JSON array of room records under a single key.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/ExamRooms/internal/domain"
)

const DefaultKey = "classrooms"

func encodeRooms(rooms []domain.Room) ([]byte, error) {
	if rooms == nil {
		rooms = []domain.Room{}
	}
	data, err := json.Marshal(rooms)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rooms: %w", err)
	}
	return data, nil
}

func decodeRooms(data []byte) ([]domain.Room, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rooms []domain.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rooms: %w", err)
	}
	return rooms, nil
}
