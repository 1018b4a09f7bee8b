package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MizanFlowDEV/mizanflow/rotation"
	"github.com/MizanFlowDEV/mizanflow/rotation/store"
)

func testSchedule(id string) *rotation.Schedule {
	engine := rotation.NewEngine(rotation.NoHolidays{})
	s := engine.GenerateSchedule(id, rotation.NewDate(2025, time.January, 6), 3)
	s.VacationBalance = 20
	return s
}

func TestMemory_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	s := testSchedule("worker-1")

	require.NoError(t, m.Save(ctx, s))
	got, err := m.Load(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestMemory_HandsOutCopies(t *testing.T) {
	// Mutating a loaded schedule must not leak back into the store, and
	// mutating the saved original must not change what Load returns.
	ctx := context.Background()
	m := store.NewMemory()
	s := testSchedule("worker-1")
	require.NoError(t, m.Save(ctx, s))

	loaded, err := m.Load(ctx, "worker-1")
	require.NoError(t, err)
	loaded.Days[0].Type = rotation.DayCompanyOff
	s.VacationBalance = 0

	again, err := m.Load(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, rotation.DayWorkday, again.Days[0].Type)
	assert.Equal(t, 20, again.VacationBalance)
}

func TestMemory_LoadUnknown(t *testing.T) {
	m := store.NewMemory()
	_, err := m.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, rotation.ErrScheduleNotFound)
}

func TestMemory_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.Save(ctx, testSchedule("b")))
	require.NoError(t, m.Save(ctx, testSchedule("a")))
	require.NoError(t, m.Save(ctx, testSchedule("c")))

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	require.NoError(t, m.Delete(ctx, "b"))
	require.NoError(t, m.Delete(ctx, "never-existed"))

	ids, err = m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)

	_, err = m.Load(ctx, "b")
	assert.ErrorIs(t, err, rotation.ErrScheduleNotFound)
}
