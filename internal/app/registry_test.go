package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/dkeye/ExamRooms/internal/adapters/store"
	"github.com/dkeye/ExamRooms/internal/core/mocks"
	"github.com/dkeye/ExamRooms/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRegistry(t *testing.T) (*Registry, *store.Memory) {
	t.Helper()
	mem := store.NewMemory("")
	reg := NewRegistry(mem)
	require.NoError(t, reg.Load(context.Background()))
	return reg, mem
}

func TestRegistry_AddKeepsInsertionOrder(t *testing.T) {
	reg, mem := newTestRegistry(t)
	ctx := context.Background()

	for _, r := range scenarioRooms() {
		require.NoError(t, reg.Add(ctx, r))
	}
	assert.Equal(t, scenarioRooms(), slices.Collect(reg.All()))

	persisted, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, scenarioRooms(), persisted)
	assert.Equal(t, domain.RosterStats{TotalRooms: 3, TotalCapacity: 130}, reg.Stats())
}

func TestRegistry_DuplicateID(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Add(ctx, domain.Room{ID: "A", Capacity: 30, FloorNo: 1}))
	err := reg.Add(ctx, domain.Room{ID: "A", Capacity: 20, FloorNo: 2})
	require.ErrorIs(t, err, domain.ErrDuplicateRoomID)

	assert.Equal(t, 1, reg.Len())
	room, ok := reg.Get("A")
	require.True(t, ok)
	assert.Equal(t, 30, room.Capacity)
}

func TestRegistry_ValidationLeavesStateUnchanged(t *testing.T) {
	reg, mem := newTestRegistry(t)
	err := reg.Add(context.Background(), domain.Room{ID: "X", Capacity: -5, FloorNo: 0})
	require.ErrorIs(t, err, domain.ErrValidation)

	assert.Zero(t, reg.Len())
	assert.Nil(t, mem.Raw(), "store must not be written on a rejected add")
}

func TestRegistry_Remove(t *testing.T) {
	reg, mem := newTestRegistry(t)
	ctx := context.Background()
	for _, r := range scenarioRooms() {
		require.NoError(t, reg.Add(ctx, r))
	}

	require.NoError(t, reg.Remove(ctx, "B"))
	assert.Equal(t, []domain.Room{scenarioRooms()[0], scenarioRooms()[2]}, reg.Snapshot())

	persisted, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg.Snapshot(), persisted)

	err = reg.Remove(ctx, "B")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_Clear(t *testing.T) {
	reg, mem := newTestRegistry(t)
	ctx := context.Background()
	for _, r := range scenarioRooms() {
		require.NoError(t, reg.Add(ctx, r))
	}

	require.NoError(t, reg.Clear(ctx))
	assert.Zero(t, reg.Len())
	assert.JSONEq(t, `[]`, string(mem.Raw()))

	require.NoError(t, reg.Clear(ctx), "clearing an empty registry is fine")
}

func TestRegistry_ListIsRestartable(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	require.NoError(t, reg.Add(ctx, domain.Room{ID: "A", Capacity: 10}))

	seq := reg.All()
	first := slices.Collect(seq)
	assert.Equal(t, first, slices.Collect(seq))

	require.NoError(t, reg.Add(ctx, domain.Room{ID: "B", Capacity: 10}))
	assert.Len(t, slices.Collect(seq), 2, "re-listing reflects the current roster")
}

func TestRegistry_SnapshotIsDetached(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	require.NoError(t, reg.Add(ctx, domain.Room{ID: "A", Capacity: 10}))

	snap := reg.Snapshot()
	require.NoError(t, reg.Clear(ctx))
	assert.Len(t, snap, 1)
}

func TestRegistry_LoadHydrates(t *testing.T) {
	mem := store.NewMemory("")
	require.NoError(t, mem.Save(context.Background(), scenarioRooms()))

	reg := NewRegistry(mem)
	require.NoError(t, reg.Load(context.Background()))
	assert.Equal(t, scenarioRooms(), reg.Snapshot())
}

func TestRegistry_LoadRejectsBadRecords(t *testing.T) {
	ctx := context.Background()

	mem := store.NewMemory("")
	require.NoError(t, mem.Save(ctx, []domain.Room{{ID: "A", Capacity: 1}, {ID: "A", Capacity: 2}}))
	assert.ErrorIs(t, NewRegistry(mem).Load(ctx), domain.ErrDuplicateRoomID)

	mem = store.NewMemory("")
	require.NoError(t, mem.Save(ctx, []domain.Room{{ID: "A", Capacity: 0}}))
	assert.ErrorIs(t, NewRegistry(mem).Load(ctx), domain.ErrValidation)
}

func TestRegistry_StoreFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockRoomStore(ctrl)
	ctx := context.Background()
	boom := errors.New("store down")

	st.EXPECT().Load(gomock.Any()).Return([]domain.Room{{ID: "A", Capacity: 10}}, nil)
	st.EXPECT().Save(gomock.Any(), gomock.Any()).Return(boom).Times(3)

	reg := NewRegistry(st)
	require.NoError(t, reg.Load(ctx))

	assert.ErrorIs(t, reg.Add(ctx, domain.Room{ID: "B", Capacity: 5}), boom)
	assert.ErrorIs(t, reg.Remove(ctx, "A"), boom)
	assert.ErrorIs(t, reg.Clear(ctx), boom)

	assert.Equal(t, []domain.Room{{ID: "A", Capacity: 10}}, reg.Snapshot())
}

func TestRegistry_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockRoomStore(ctrl)
	st.EXPECT().Load(gomock.Any()).Return(nil, errors.New("unreachable"))

	err := NewRegistry(st).Load(context.Background())
	assert.ErrorContains(t, err, "unreachable")
}

func TestRegistry_RejectsUntrimmedID(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	require.NoError(t, reg.Add(ctx, domain.Room{ID: "A", Capacity: 10}))

	assert.ErrorIs(t, reg.Add(ctx, domain.Room{ID: " A", Capacity: 10}), domain.ErrValidation)
	assert.Equal(t, 1, reg.Len())

	mem := store.NewMemory("")
	require.NoError(t, mem.Save(ctx, []domain.Room{{ID: "A", Capacity: 1}, {ID: "A ", Capacity: 2}}))
	assert.ErrorIs(t, NewRegistry(mem).Load(ctx), domain.ErrValidation)
}

func TestRegistry_ViewStatsMatchRooms(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 200 {
			_ = reg.Add(ctx, domain.Room{ID: domain.RoomID(fmt.Sprintf("R%d", i)), Capacity: i + 1})
		}
	}()

	for range 200 {
		rooms, stats := reg.View()
		total := 0
		for _, r := range rooms {
			total += r.Capacity
		}
		require.Equal(t, len(rooms), stats.TotalRooms)
		require.Equal(t, total, stats.TotalCapacity)
	}
	wg.Wait()
}
