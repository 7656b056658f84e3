package orch

import (
	"github.com/dkeye/ExamRooms/internal/app"
	"github.com/dkeye/ExamRooms/internal/domain"
	"github.com/rs/zerolog/log"
)

// Allocate seats demand students over the current roster.
func (o *Orchestrator) Allocate(demand int) (*domain.Allocation, error) {
	if demand <= 0 {
		return nil, &domain.ValidationError{Field: "students", Reason: "must be greater than 0"}
	}

	alloc, err := app.Allocate(o.Registry.Snapshot(), demand)
	if err != nil {
		log.Info().Err(err).Str("module", "orch").Int("students", demand).Msg("allocation failed")
		return nil, err
	}
	log.Info().Str("module", "orch").
		Int("students", demand).
		Int("rooms", alloc.RoomCount()).
		Msg("allocation done")
	return alloc, nil
}
