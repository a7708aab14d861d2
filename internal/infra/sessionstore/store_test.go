package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline/BL-BookingEngine/internal/workflow"
	"github.com/bookline/BL-BookingEngine/pkg/ptr"
	"github.com/bookline/BL-BookingEngine/pkg/types"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, 30*time.Minute), mr
}

func testSession() *workflow.Session {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	return &workflow.Session{
		ID:            "a4f2c7e1",
		UserID:        42,
		State:         workflow.StateEnterCustomerInfo,
		Mode:          workflow.ModeNew,
		StaffID:       ptr.Ptr(int64(1)),
		ServiceIDs:    []int64{5, 6},
		Date:          &date,
		StartTime:     ptr.Ptr(types.TimeString("10:00")),
		CustomerName:  "Иван Петров",
		CustomerPhone: "+79991234567",
		CreatedAt:     time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 3, 2, 12, 5, 0, 0, time.UTC),
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := testSession()
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, workflow.StateEnterCustomerInfo, loaded.State)
	assert.Equal(t, []int64{5, 6}, loaded.ServiceIDs)
	require.NotNil(t, loaded.StartTime)
	assert.Equal(t, types.TimeString("10:00"), *loaded.StartTime)
	assert.Equal(t, "Иван Петров", loaded.CustomerName)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, workflow.ErrSessionNotFound)
}

func TestStore_ExpiredSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	session := testSession()
	require.NoError(t, store.Save(ctx, session))

	// Истечение TTL: брошенная сессия пропадает сама
	mr.FastForward(31 * time.Minute)

	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, workflow.ErrSessionNotFound)
}

func TestStore_SaveRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	session := testSession()
	require.NoError(t, store.Save(ctx, session))

	mr.FastForward(20 * time.Minute)
	require.NoError(t, store.Save(ctx, session))
	mr.FastForward(20 * time.Minute)

	_, err := store.Get(ctx, session.ID)
	assert.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := testSession()
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, workflow.ErrSessionNotFound)
}
