package chatsession

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewStore(rdb, ttl), mr
}

func TestPutGetRoundtrip(t *testing.T) {
	store, _ := newTestStore(t, 30*time.Minute)
	ctx := context.Background()

	state := &State{
		SessionID: "sess-1",
		Step:      StepTime,
		Draft: Draft{
			BusinessID: 1,
			ServiceID:  5,
			Date:       "2026-09-07",
			Name:       "Иван Петров",
		},
	}

	require.NoError(t, store.Put(ctx, state))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, StepTime, got.Step)
	assert.Equal(t, int64(5), got.Draft.ServiceID)
	assert.Equal(t, "2026-09-07", got.Draft.Date)
	assert.False(t, got.UpdatedAt.IsZero(), "Put проставляет UpdatedAt")
}

func TestGetMissingSession(t *testing.T) {
	store, _ := newTestStore(t, 30*time.Minute)

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &State{SessionID: "sess-ttl", Step: StepService}))

	// Сессия жива до истечения TTL
	_, err := store.Get(ctx, "sess-ttl")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, "sess-ttl")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPutExtendsTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	state := &State{SessionID: "sess-sliding", Step: StepDate}
	require.NoError(t, store.Put(ctx, state))

	// Каждое сообщение диалога сдвигает срок жизни сессии
	mr.FastForward(45 * time.Second)
	state.Step = StepTime
	require.NoError(t, store.Put(ctx, state))

	mr.FastForward(45 * time.Second)

	got, err := store.Get(ctx, "sess-sliding")
	require.NoError(t, err)
	assert.Equal(t, StepTime, got.Step)
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &State{SessionID: "sess-del", Step: StepConfirm}))
	require.NoError(t, store.Delete(ctx, "sess-del"))

	_, err := store.Get(ctx, "sess-del")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Повторное удаление не является ошибкой
	assert.NoError(t, store.Delete(ctx, "sess-del"))
}
