// internal/core/services/item_cache_test.go
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redis_a "github.com/ammerola/roadie-bag/internal/adapters/redis_adapter"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/services"
	"github.com/ammerola/roadie-bag/test/helpers"
	"github.com/ammerola/roadie-bag/test/mocks"
)

func newCachingService(t *testing.T) (*services.CachingItemService, *mocks.MockItemService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	next := mocks.NewMockItemService(gomock.NewController(t))
	cache := redis_a.NewCache(client, time.Minute, helpers.TestLogger())
	return services.NewCachingItemService(next, cache, time.Minute, helpers.TestLogger()), next, mr
}

func TestCachingItemService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, next, _ := newCachingService(t)

	next.EXPECT().GetByID(gomock.Any(), int64(1)).Return(helpers.CreateTestItem(), nil).Times(1)

	for i := 0; i < 3; i++ {
		got, err := svc.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Gaffer Tape", got.Name)
	}

	t.Run("not_found_is_not_cached", func(t *testing.T) {
		next.EXPECT().GetByID(gomock.Any(), int64(2)).Return(nil, domain.NotFound("item", 2)).Times(2)

		for i := 0; i < 2; i++ {
			_, err := svc.GetByID(ctx, 2)
			assert.True(t, domain.IsKind(err, domain.KindNotFound))
		}
	})
}

func TestCachingItemService_List(t *testing.T) {
	ctx := context.Background()
	svc, next, _ := newCachingService(t)

	page := &domain.ItemPage{Items: helpers.CreateTestItems(2), PageNum: 1, PageSize: 2, TotalPages: 1, TotalResults: 2}
	filter := domain.ItemFilter{PageSize: 2, PageNum: 1}

	next.EXPECT().List(gomock.Any(), filter).Return(page, nil).Times(2)

	got, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	// PageNum 0 is the first page and shares its cache entry
	_, err = svc.List(ctx, domain.ItemFilter{PageSize: 2})
	require.NoError(t, err)

	// A write drops every cached page
	next.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(helpers.CreateTestItem(), nil)
	_, err = svc.Create(ctx, helpers.TestUser(), helpers.CreateTestItem())
	require.NoError(t, err)

	_, err = svc.List(ctx, filter)
	require.NoError(t, err)

	t.Run("invalid_page_size_skips_cache_and_store", func(t *testing.T) {
		_, err := svc.List(ctx, domain.ItemFilter{PageSize: 0})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestCachingItemService_InvalidateItem(t *testing.T) {
	ctx := context.Background()
	svc, next, mr := newCachingService(t)

	next.EXPECT().GetByID(gomock.Any(), int64(1)).Return(helpers.CreateTestItem(), nil)
	next.EXPECT().List(gomock.Any(), gomock.Any()).Return(&domain.ItemPage{PageNum: 1, PageSize: 5}, nil)

	_, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	_, err = svc.List(ctx, domain.ItemFilter{PageSize: 5})
	require.NoError(t, err)
	require.Len(t, mr.Keys(), 2)

	require.NoError(t, svc.InvalidateItem(ctx, 1))
	assert.Empty(t, mr.Keys())
}

func TestCachingItemService_CacheDown(t *testing.T) {
	ctx := context.Background()
	svc, next, mr := newCachingService(t)
	mr.Close()

	next.EXPECT().GetByID(gomock.Any(), int64(1)).Return(helpers.CreateTestItem(), nil).MinTimes(1)

	got, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	// Writes still succeed when invalidation fails
	next.EXPECT().Delete(gomock.Any(), gomock.Any(), int64(1)).Return(nil)
	assert.NoError(t, svc.Delete(ctx, helpers.TestUser(), 1))
}
