package orch

import (
	"sync"

	"github.com/dkeye/ExamRooms/internal/app"
	"github.com/dkeye/ExamRooms/internal/core"
	"github.com/dkeye/ExamRooms/internal/domain"
)

// Orchestrator is the single entry point the presentation layer calls into.
type Orchestrator struct {
	Registry *app.Registry

	mu        sync.RWMutex
	listeners []core.RosterListener
}

func New(reg *app.Registry) *Orchestrator {
	return &Orchestrator{Registry: reg}
}

// Subscribe registers a listener for roster changes.
func (o *Orchestrator) Subscribe(l core.RosterListener) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, l)
}

func (o *Orchestrator) Rooms() []domain.Room {
	return o.Registry.Snapshot()
}

func (o *Orchestrator) Stats() domain.RosterStats {
	return o.Registry.Stats()
}

func (o *Orchestrator) Roster() core.RosterEvent {
	rooms, stats := o.Registry.View()
	return core.RosterEvent{Rooms: rooms, Stats: stats}
}
