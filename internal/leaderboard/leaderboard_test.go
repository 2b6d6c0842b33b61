package leaderboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/ecoquest/pkg/game"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), testLogger())
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis store: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
		mr.Close()
	})
	return store, mr
}

func sampleEntries() []Entry {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Entry{
		{SessionID: uuid.New(), Player: "ana", Points: 2620, Level: 3, UpdatedAt: ts},
		{SessionID: uuid.New(), Player: "bo", Points: 2975, Level: 4, Completed: []string{"quiz", "recycling"}, UpdatedAt: ts},
		{SessionID: uuid.New(), Player: "cy", Points: 2570, Level: 3, UpdatedAt: ts},
	}
}

func testStores(t *testing.T) map[string]Store {
	redisStore, _ := setupTestRedis(t)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}
}

func TestStore_RecordAndTop(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Ping(ctx))

			for _, e := range sampleEntries() {
				require.NoError(t, store.Record(ctx, e))
			}

			top, err := store.Top(ctx, 2)
			require.NoError(t, err)
			require.Len(t, top, 2)
			assert.Equal(t, "bo", top[0].Player)
			assert.Equal(t, 2975, top[0].Points)
			assert.Equal(t, 4, top[0].Level)
			assert.Equal(t, []string{"quiz", "recycling"}, top[0].Completed)
			assert.True(t, top[0].UpdatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
			assert.Equal(t, "ana", top[1].Player)

			all, err := store.Top(ctx, 10)
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}

func TestStore_RecordOverwritesSession(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			e := sampleEntries()[0]
			require.NoError(t, store.Record(ctx, e))
			e.Points += 50
			require.NoError(t, store.Record(ctx, e))

			top, err := store.Top(ctx, 5)
			require.NoError(t, err)
			require.Len(t, top, 1)
			assert.Equal(t, 2670, top[0].Points)
		})
	}
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore()
	assert.Error(t, store.Record(ctx, sampleEntries()[0]))
	_, err := store.Top(ctx, 1)
	assert.Error(t, err)
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := setupTestRedis(t)
	e := sampleEntries()[0]
	require.NoError(t, store.Record(context.Background(), e))
	assert.Equal(t, 30*24*time.Hour, mr.TTL(playerPrefix+e.SessionID.String()))
}

func TestRedisStore_SkipsMalformedMembers(t *testing.T) {
	store, mr := setupTestRedis(t)
	_, err := mr.ZAdd(scoresKey, 9999, "not-a-uuid")
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), sampleEntries()[0]))

	top, err := store.Top(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "ana", top[0].Player)
}

func TestNewRedisStore_Errors(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "::nope", testLogger())
	assert.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err = NewRedisStore(ctx, "redis://127.0.0.1:1", testLogger())
	assert.Error(t, err)
}

func TestBroadcaster_Publish(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()
	sessionID := uuid.New()

	sub := store.Client().Subscribe(ctx, SessionChannel(sessionID))
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	b := NewBroadcaster(store.Client(), testLogger())
	require.True(t, b.Enabled())

	a := NewActivity(sessionID, "ana", game.Event{
		Type:    game.EventMissionCompleted,
		Mission: game.MissionRecycling,
		Points:  2600,
		Level:   3,
	})
	require.NoError(t, b.Publish(ctx, a))

	select {
	case msg := <-sub.Channel():
		var got Activity
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, a, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for activity")
	}
}

func TestBroadcaster_Disabled(t *testing.T) {
	var nilBroadcaster *Broadcaster
	assert.False(t, nilBroadcaster.Enabled())
	assert.NoError(t, nilBroadcaster.Publish(context.Background(), Activity{}))

	b := NewBroadcaster(nil, testLogger())
	assert.False(t, b.Enabled())
	assert.NoError(t, b.Publish(context.Background(), Activity{}))
}

func TestBroadcasts(t *testing.T) {
	assert.True(t, Broadcasts(game.EventPointsAwarded))
	assert.True(t, Broadcasts(game.EventQuizCompleted))
	assert.False(t, Broadcasts(game.EventStatsTick))
	assert.False(t, Broadcasts(game.EventNotification))
}
