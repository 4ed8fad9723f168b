// internal/adapters/redis_adapter/cache_test.go
package redis_a_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/roadie-bag/internal/adapters/redis_adapter"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/test/helpers"
)

func newCache(t *testing.T) (*redis_a.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redis_a.NewCache(client, 5*time.Minute, helpers.TestLogger()), mr
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	t.Run("item_round_trips_with_size_name", func(t *testing.T) {
		item := helpers.CreateTestItem(func(i *domain.Item) { i.Size = domain.SizeLarge })
		require.NoError(t, cache.Set(ctx, "item:1", item))

		raw, err := mr.Get("item:1")
		require.NoError(t, err)
		assert.Contains(t, raw, `"size":"Large"`)

		var got domain.Item
		require.NoError(t, cache.Get(ctx, "item:1", &got))
		assert.Equal(t, item.Name, got.Name)
		assert.Equal(t, domain.SizeLarge, got.Size)
		assert.Equal(t, item.AddedBy, got.AddedBy)
	})

	t.Run("page_round_trips", func(t *testing.T) {
		page := &domain.ItemPage{Items: helpers.CreateTestItems(3), PageNum: 1, PageSize: 3, TotalPages: 1, TotalResults: 3}
		require.NoError(t, cache.Set(ctx, "items:page:abc", page))

		var got domain.ItemPage
		require.NoError(t, cache.Get(ctx, "items:page:abc", &got))
		assert.Len(t, got.Items, 3)
		assert.Equal(t, int64(3), got.TotalResults)
	})

	t.Run("default_ttl_applies", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "item:2", "x"))
		assert.Equal(t, 5*time.Minute, mr.TTL("item:2"))
	})

	t.Run("missing_key", func(t *testing.T) {
		var got domain.Item
		err := cache.Get(ctx, "item:404", &got)
		assert.True(t, errors.Is(err, redis_a.ErrCacheMiss))
	})
}

func TestCache_SetWithTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "revoked:jti-1", true, time.Minute))

	exists, err := cache.Exists(ctx, "revoked:jti-1")
	require.NoError(t, err)
	assert.True(t, exists)

	mr.FastForward(2 * time.Minute)

	exists, err = cache.Exists(ctx, "revoked:jti-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCache_Exists(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t)

	require.NoError(t, cache.Set(ctx, "a", 1))

	tests := []struct {
		name     string
		keys     []string
		expected bool
	}{
		{name: "single_present", keys: []string{"a"}, expected: true},
		{name: "single_absent", keys: []string{"b"}, expected: false},
		{name: "some_absent", keys: []string{"a", "b"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cache.Exists(ctx, tt.keys...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t)

	pages := []string{"items:page:1", "items:page:2", "items:page:3"}
	keep := []string{"item:1", "draws:count:1"}

	for _, key := range append(pages, keep...) {
		require.NoError(t, cache.Set(ctx, key, "value"))
	}

	require.NoError(t, cache.DeletePattern(ctx, "items:page:*"))

	for _, key := range pages {
		var result string
		assert.Equal(t, redis_a.ErrCacheMiss, cache.Get(ctx, key, &result))
	}
	for _, key := range keep {
		var result string
		require.NoError(t, cache.Get(ctx, key, &result))
		assert.Equal(t, "value", result)
	}

	// Nothing left to match is not an error
	require.NoError(t, cache.DeletePattern(ctx, "items:page:*"))
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t)

	fetchCount := 0
	fetch := func() (interface{}, error) {
		fetchCount++
		return helpers.CreateTestItem(), nil
	}

	var first domain.Item
	require.NoError(t, cache.GetOrSet(ctx, "item:1", &first, fetch, time.Minute))
	assert.Equal(t, "Gaffer Tape", first.Name)
	assert.Equal(t, 1, fetchCount)

	var second domain.Item
	require.NoError(t, cache.GetOrSet(ctx, "item:1", &second, fetch, time.Minute))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetchCount)

	t.Run("fetch_error_is_not_cached", func(t *testing.T) {
		var got domain.Item
		err := cache.GetOrSet(ctx, "item:2", &got, func() (interface{}, error) {
			return nil, errors.New("db down")
		}, time.Minute)
		assert.ErrorContains(t, err, "db down")

		exists, err := cache.Exists(ctx, "item:2")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestCache_Counters(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t)

	val, err := cache.GetCounter(ctx, "draws:count:7")
	require.NoError(t, err)
	assert.Equal(t, int64(0), val)

	for want := int64(1); want <= 3; want++ {
		val, err = cache.Increment(ctx, "draws:count:7")
		require.NoError(t, err)
		assert.Equal(t, want, val)
	}

	val, err = cache.GetCounter(ctx, "draws:count:7")
	require.NoError(t, err)
	assert.Equal(t, int64(3), val)
}

func TestCache_Ping(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	require.NoError(t, cache.Ping(ctx))

	mr.Close()
	assert.Error(t, cache.Ping(ctx))
}
