package orch

import (
	"context"

	"github.com/dkeye/ExamRooms/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) AddRoom(ctx context.Context, room domain.Room) error {
	if err := o.Registry.Add(ctx, room); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("room", string(room.ID)).Msg("add room rejected")
		return err
	}
	o.publish()
	return nil
}

func (o *Orchestrator) RemoveRoom(ctx context.Context, id domain.RoomID) error {
	if err := o.Registry.Remove(ctx, id); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("room", string(id)).Msg("remove room rejected")
		return err
	}
	o.publish()
	return nil
}

func (o *Orchestrator) ClearRooms(ctx context.Context) error {
	if err := o.Registry.Clear(ctx); err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("clear rooms failed")
		return err
	}
	o.publish()
	return nil
}

// publish builds the event under the listener lock so that the last event
// delivered always reflects the latest roster.
func (o *Orchestrator) publish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	ev := o.Roster()
	for _, l := range o.listeners {
		l.OnRoster(ev)
	}
}
