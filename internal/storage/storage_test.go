package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resto-dashboard/pkg/database/postgresql"
)

// runKeyValueContract - общие требования ко всем драйверам.
func runKeyValueContract(t *testing.T, kv KeyValueStore) {
	ctx := context.Background()

	t.Run("missing slot", func(t *testing.T) {
		_, err := kv.Get(ctx, "ns-missing", SlotAccessToken)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set get overwrite", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "ns-a", SlotAccessToken, "one"))
		require.NoError(t, kv.Set(ctx, "ns-a", SlotAccessToken, "two"))
		value, err := kv.Get(ctx, "ns-a", SlotAccessToken)
		require.NoError(t, err)
		assert.Equal(t, "two", value)
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "ns-b", SlotOutletID, "o1"))
		_, err := kv.Get(ctx, "ns-c", SlotOutletID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("del many", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "ns-d", SlotRestaurantID, "r1"))
		require.NoError(t, kv.Set(ctx, "ns-d", SlotRestaurantName, "Чайхана"))
		require.NoError(t, kv.Set(ctx, "ns-d", SlotDeviceID, "dev"))

		require.NoError(t, kv.Del(ctx, "ns-d", SlotRestaurantID, SlotRestaurantName, SlotOutletID))

		_, err := kv.Get(ctx, "ns-d", SlotRestaurantID)
		assert.ErrorIs(t, err, ErrNotFound)
		value, err := kv.Get(ctx, "ns-d", SlotDeviceID)
		require.NoError(t, err)
		assert.Equal(t, "dev", value)

		assert.NoError(t, kv.Del(ctx, "ns-d"))
		assert.NoError(t, kv.Del(ctx, "ns-never-written", SlotAccessToken))
	})
}

func TestMemoryStore(t *testing.T) {
	runKeyValueContract(t, NewMemory())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewRedis(client, "test:", time.Hour)
	defer kv.Close()

	runKeyValueContract(t, kv)

	t.Run("key layout and ttl", func(t *testing.T) {
		require.NoError(t, kv.Set(context.Background(), "sess-1", SlotOutletName, "Центр"))
		assert.True(t, mr.Exists("test:sess-1:outlet_name"))
		assert.Equal(t, time.Hour, mr.TTL("test:sess-1:outlet_name"))

		mr.FastForward(2 * time.Hour)
		_, err := kv.Get(context.Background(), "sess-1", SlotOutletName)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ttl slides for the whole session", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "sess-2", SlotAccessToken, "acc"))

		mr.FastForward(40 * time.Minute)
		require.NoError(t, kv.Set(ctx, "sess-2", SlotRestaurantID, "R1"))
		assert.Equal(t, time.Hour, mr.TTL("test:sess-2:access_token"))

		mr.FastForward(40 * time.Minute)
		value, err := kv.Get(ctx, "sess-2", SlotAccessToken)
		require.NoError(t, err)
		assert.Equal(t, "acc", value)
		assert.Equal(t, time.Hour, mr.TTL("test:sess-2:restaurant_id"))

		mr.FastForward(50 * time.Minute)
		_, err = kv.Get(ctx, "sess-2", SlotRestaurantID)
		require.NoError(t, err)

		require.NoError(t, kv.Del(ctx, "sess-2", SlotRestaurantID))
		members, err := mr.Members("test:sess-2:_slots")
		require.NoError(t, err)
		assert.Equal(t, []string{SlotAccessToken}, members)

		mr.FastForward(2 * time.Hour)
		_, err = kv.Get(ctx, "sess-2", SlotAccessToken)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("connection failure surfaces", func(t *testing.T) {
		broken := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:", time.Hour)
		mr.SetError("READONLY")
		defer mr.SetError("")

		_, err := broken.Get(context.Background(), "sess-1", SlotAccessToken)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		_ = broken.Close()
	})
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан")
	}
	ctx := context.Background()
	require.NoError(t, postgresql.RunMigrations(ctx, dsn))
	pool, err := postgresql.ConnectDB(ctx, dsn, zap.NewNop())
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, "DELETE FROM client_storage WHERE namespace LIKE 'ns-%'")
	require.NoError(t, err)

	runKeyValueContract(t, NewPostgres(pool, time.Hour))
}
