package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth-assistant/internal/models"
)

func redisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Hour)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := redisStore(t)
	ctx := context.Background()

	conv := models.ConversationContext{
		SessionID:          "abc",
		UserLocation:       "Dallas",
		RequiredProcedures: []string{"MRI"},
		Stage:              models.StageCompleteRequest,
		History: []models.TurnRecord{
			{Message: "mri in dallas", Intent: models.IntentLocationProcedure, Timestamp: time.Now().UTC()},
		},
	}
	require.NoError(t, store.Save(ctx, conv))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Dallas", got.UserLocation)
	assert.Equal(t, []string{"MRI"}, got.RequiredProcedures)
	assert.Equal(t, models.StageCompleteRequest, got.Stage)
	assert.Len(t, got.History, 1)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestRedisStoreUnknownSession(t *testing.T) {
	store := redisStore(t)

	got, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, "missing", got.SessionID)
	assert.Empty(t, got.UserLocation)
	assert.Empty(t, got.History)
}

func TestRedisStoreDelete(t *testing.T) {
	store := redisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.ConversationContext{SessionID: "gone", UserLocation: "Austin"}))
	require.NoError(t, store.Delete(ctx, "gone"))

	got, err := store.Get(ctx, "gone")
	require.NoError(t, err)
	assert.Empty(t, got.UserLocation)
}

func TestRedisStoreGetFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("session:abc").SetErr(assert.AnError)

	store := NewRedisStore(client, time.Hour)
	_, err := store.Get(context.Background(), "abc")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.ConversationContext{SessionID: "m1", UserLocation: "Houston"}))

	got, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Houston", got.UserLocation)

	require.NoError(t, store.Delete(ctx, "m1"))
	got, err = store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, got.UserLocation)
}
