package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))

	val, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
}

func TestMemory_TTLExpiryWithSimulatedClock(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	const ttl = 7 * 24 * time.Hour
	require.NoError(t, store.Set(ctx, "k", []byte("v"), ttl))

	// One hour short of expiry: still a hit.
	now = now.Add(ttl - time.Hour)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	// Past expiry: a miss.
	now = now.Add(2 * time.Hour)
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_ZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	now = now.Add(1000 * 24 * time.Hour)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedis_HitMissAndError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisFromClient(client)
	ctx := context.Background()

	mock.ExpectGet("hit").SetVal("payload")
	val, ok, err := store.Get(ctx, "hit")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), val)

	mock.ExpectGet("miss").RedisNil()
	_, ok, err = store.Get(ctx, "miss")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectGet("broken").SetErr(errors.New("connection refused"))
	_, ok, err = store.Get(ctx, "broken")
	assert.Error(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_SetWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisFromClient(client)
	ctx := context.Background()

	const ttl = 7 * 24 * time.Hour
	mock.ExpectSet("k", []byte("v"), ttl).SetVal("OK")
	require.NoError(t, store.Set(ctx, "k", []byte("v"), ttl))
	require.NoError(t, mock.ExpectationsWereMet())
}
