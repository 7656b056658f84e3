package app

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/dkeye/ExamRooms/internal/core"
	"github.com/dkeye/ExamRooms/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry owns the ordered room roster and writes it through to the store
// on every mutation. A mutation whose store write fails leaves the roster
// unchanged.
type Registry struct {
	mu    sync.RWMutex
	rooms []domain.Room
	store core.RoomStore
}

func NewRegistry(store core.RoomStore) *Registry {
	return &Registry{store: store}
}

// Load replaces the roster with the stored one. It is meant to run once on
// start; an empty store yields an empty roster.
func (r *Registry) Load(ctx context.Context) error {
	stored, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}

	seen := make(map[domain.RoomID]struct{}, len(stored))
	for _, room := range stored {
		if err := room.Validate(); err != nil {
			return fmt.Errorf("stored room %q: %w", room.ID, err)
		}
		if _, dup := seen[room.ID]; dup {
			return fmt.Errorf("stored room %q: %w", room.ID, domain.ErrDuplicateRoomID)
		}
		seen[room.ID] = struct{}{}
	}

	r.mu.Lock()
	r.rooms = slices.Clone(stored)
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Int("rooms", len(stored)).Msg("loaded rooms")
	return nil
}

// Add appends a room. A duplicate id is reported before field validation.
func (r *Registry) Add(ctx context.Context, room domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(room.ID) >= 0 {
		return fmt.Errorf("add %q: %w", room.ID, domain.ErrDuplicateRoomID)
	}
	if err := room.Validate(); err != nil {
		return err
	}

	next := append(slices.Clone(r.rooms), room)
	if err := r.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save rooms: %w", err)
	}
	r.rooms = next
	log.Info().Str("module", "app.registry").Str("room", string(room.ID)).Msg("added room")
	return nil
}

// Remove deletes the room with the given id. An unknown id yields
// ErrRoomNotFound and leaves the store untouched.
func (r *Registry) Remove(ctx context.Context, id domain.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", id, domain.ErrRoomNotFound)
	}

	next := slices.Delete(slices.Clone(r.rooms), i, i+1)
	if err := r.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save rooms: %w", err)
	}
	r.rooms = next
	log.Info().Str("module", "app.registry").Str("room", string(id)).Msg("removed room")
	return nil
}

func (r *Registry) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Save(ctx, []domain.Room{}); err != nil {
		return fmt.Errorf("save rooms: %w", err)
	}
	n := len(r.rooms)
	r.rooms = nil
	log.Info().Str("module", "app.registry").Int("removed", n).Msg("cleared rooms")
	return nil
}

// All yields rooms in insertion order. Each iteration sees the roster as it
// is when the iteration starts.
func (r *Registry) All() iter.Seq[domain.Room] {
	return func(yield func(domain.Room) bool) {
		for _, room := range r.Snapshot() {
			if !yield(room) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the roster that later mutations do not affect.
func (r *Registry) Snapshot() []domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rooms)
}

func (r *Registry) Get(id domain.RoomID) (domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.rooms[i], true
	}
	return domain.Room{}, false
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) Stats() domain.RosterStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats()
}

// View returns the roster and its stats taken under one lock, so the two
// always agree.
func (r *Registry) View() ([]domain.Room, domain.RosterStats) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rooms), r.stats()
}

// stats expects r.mu to be held.
func (r *Registry) stats() domain.RosterStats {
	stats := domain.RosterStats{TotalRooms: len(r.rooms)}
	for _, room := range r.rooms {
		stats.TotalCapacity += room.Capacity
	}
	return stats
}

// indexOf expects r.mu to be held.
func (r *Registry) indexOf(id domain.RoomID) int {
	return slices.IndexFunc(r.rooms, func(room domain.Room) bool { return room.ID == id })
}
