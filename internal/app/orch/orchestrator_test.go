package orch

import (
	"context"
	"sync"
	"testing"

	"github.com/dkeye/ExamRooms/internal/adapters/store"
	"github.com/dkeye/ExamRooms/internal/app"
	"github.com/dkeye/ExamRooms/internal/core"
	"github.com/dkeye/ExamRooms/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []core.RosterEvent
}

func (r *recorder) OnRoster(ev core.RosterEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) last() core.RosterEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *recorder) {
	t.Helper()
	reg := app.NewRegistry(store.NewMemory(""))
	require.NoError(t, reg.Load(context.Background()))
	o := New(reg)
	rec := &recorder{}
	o.Subscribe(rec)
	return o, rec
}

func TestOrchestrator_MutationsPublishRoster(t *testing.T) {
	o, rec := newTestOrchestrator(t)
	ctx := context.Background()

	require.NoError(t, o.AddRoom(ctx, domain.Room{ID: "A", Capacity: 30, FloorNo: 2}))
	require.NoError(t, o.AddRoom(ctx, domain.Room{ID: "B", Capacity: 50, FloorNo: 1}))
	assert.Equal(t, 2, rec.count())
	assert.Equal(t, domain.RosterStats{TotalRooms: 2, TotalCapacity: 80}, rec.last().Stats)

	require.NoError(t, o.RemoveRoom(ctx, "A"))
	assert.Equal(t, []domain.Room{{ID: "B", Capacity: 50, FloorNo: 1}}, rec.last().Rooms)

	require.NoError(t, o.ClearRooms(ctx))
	assert.Empty(t, rec.last().Rooms)
	assert.Equal(t, 4, rec.count())
}

func TestOrchestrator_FailedMutationDoesNotPublish(t *testing.T) {
	o, rec := newTestOrchestrator(t)
	ctx := context.Background()

	assert.ErrorIs(t, o.AddRoom(ctx, domain.Room{ID: "X", Capacity: -5}), domain.ErrValidation)
	assert.ErrorIs(t, o.RemoveRoom(ctx, "nope"), domain.ErrRoomNotFound)
	assert.Zero(t, rec.count())
}

func TestOrchestrator_Allocate(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	ctx := context.Background()

	_, err := o.Allocate(10)
	assert.ErrorIs(t, err, domain.ErrNoRoomsAvailable)

	require.NoError(t, o.AddRoom(ctx, domain.Room{ID: "A", Capacity: 30, FloorNo: 2}))
	require.NoError(t, o.AddRoom(ctx, domain.Room{ID: "B", Capacity: 50, FloorNo: 1, NearWashroom: true}))
	require.NoError(t, o.AddRoom(ctx, domain.Room{ID: "C", Capacity: 50, FloorNo: 1}))

	alloc, err := o.Allocate(60)
	require.NoError(t, err)
	assert.Equal(t, 2, alloc.RoomCount())
	assert.Equal(t, domain.RoomID("B"), alloc.Rooms[0].ID)

	_, err = o.Allocate(200)
	var capErr *domain.InsufficientCapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 70, capErr.Shortfall)
}

func TestOrchestrator_RejectsNonPositiveDemand(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	for _, d := range []int{0, -3} {
		_, err := o.Allocate(d)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}
